// Package chi exposes the recommendation engine over HTTP for serve mode.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/domain"
	"github.com/shopsense/shopsense/internal/domain/prefs"
	"github.com/shopsense/shopsense/internal/usecase/recommend"
	"github.com/shopsense/shopsense/internal/version"
)

const defaultK = 5

// Server holds the HTTP handlers.
type Server struct {
	rec       *recommend.Service
	source    recommend.CatalogSource
	sentiment recommend.SentimentScorer
	logger    *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(
	rec *recommend.Service,
	source recommend.CatalogSource,
	sentiment recommend.SentimentScorer,
	logger *zap.Logger,
) *Server {
	return &Server{rec: rec, source: source, sentiment: sentiment, logger: logger}
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommend", s.handleRecommend)
		r.Get("/compare", s.handleCompare)
		r.Get("/products/{id}/reviews", s.handleReviews)
		r.Post("/index/rebuild", s.handleRebuild)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// handleRecommend runs the full pipeline for one query.
// Query params: query (required), k, category, min_price, max_price, keywords.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := strings.TrimSpace(q.Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query is required")
		return
	}

	k := defaultK
	if raw := q.Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", "k must be a positive integer")
			return
		}
		k = parsed
	}

	minPrice, err := parsePrice(q.Get("min_price"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "min_price must be a number")
		return
	}
	maxPrice, err := parsePrice(q.Get("max_price"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "max_price must be a number")
		return
	}
	if q.Get("max_price") == "" {
		// No upper bound supplied: disable the price criterion via the
		// inverted-band rule instead of penalizing everything above zero.
		maxPrice = -1
	}

	p := prefs.New(q.Get("category"), minPrice, maxPrice, q.Get("keywords"))

	rec, err := s.rec.Recommend(r.Context(), query, p, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationToResponse(query, rec))
}

// handleCompare compares an explicit id list: ids=P1,P2,P3.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ids := prefs.ParseKeywords(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "ids is required")
		return
	}

	comp, err := s.rec.CompareByIDs(ids)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comparisonToResponse(comp))
}

// handleReviews lists a product's reviews with sentiment scores attached.
func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tables, err := s.source.Tables()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if _, ok := tables.Products.Get(id); !ok {
		writeError(w, http.StatusNotFound, "product_not_found", "unknown product id "+id)
		return
	}

	reviews := tables.Reviews.ForProducts([]string{id})
	out := make([]reviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, reviewResponse{
			ProductID: rev.ProductID,
			Stars:     rev.Stars,
			Text:      rev.Text,
			Sentiment: s.sentiment.Score(rev.Text),
		})
	}

	writeJSON(w, http.StatusOK, reviewsResponse{ProductID: id, Reviews: out})
}

// handleRebuild forces a full index rebuild.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	entries, err := s.rec.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"entries": entries})
}

// handleDomainError maps domain sentinel errors onto HTTP statuses.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrVectorDimMismatch):
		writeError(w, http.StatusConflict, "vector_dim_mismatch", err.Error())
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, "embedding_provider_error", err.Error())
	case errors.Is(err, domain.ErrInvalidTable):
		writeError(w, http.StatusInternalServerError, "invalid_table", err.Error())
	default:
		s.logger.Error("Unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func parsePrice(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
