package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopsense/shopsense/internal/config"
	"github.com/shopsense/shopsense/internal/db"
	dbRedis "github.com/shopsense/shopsense/internal/db/redis"
	"github.com/shopsense/shopsense/internal/domain"
	"github.com/shopsense/shopsense/internal/logger"
	"github.com/shopsense/shopsense/internal/metrics"
	catalogrepo "github.com/shopsense/shopsense/internal/repository/catalog"
	"github.com/shopsense/shopsense/internal/repository/embcache"
	indexrepo "github.com/shopsense/shopsense/internal/repository/index"
	openaiEmb "github.com/shopsense/shopsense/internal/transport/openai"
	compareuc "github.com/shopsense/shopsense/internal/usecase/compare"
	indexuc "github.com/shopsense/shopsense/internal/usecase/index"
	rankuc "github.com/shopsense/shopsense/internal/usecase/rank"
	recommenduc "github.com/shopsense/shopsense/internal/usecase/recommend"
	retrieveuc "github.com/shopsense/shopsense/internal/usecase/retrieve"
	sentimentuc "github.com/shopsense/shopsense/internal/usecase/sentiment"
	summaryuc "github.com/shopsense/shopsense/internal/usecase/summary"
)

// app is the composition root shared by every command.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     db.Store // nil when no database is configured
	embedder  domain.Embedder
	catalog   *catalogrepo.Provider
	index     *indexuc.Service
	retriever *retrieveuc.Service
	sentiment *sentimentuc.Scorer
	recommend *recommenduc.Service
}

// newApp wires the full service graph from configuration.
func newApp(ctx context.Context) (*app, func(), error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterEmbeddingMetrics()

	// Optional Redis: backs the embedding cache and the redis index store.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create database store: %w", err)
		}
		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			redisStore.Close()
			return nil, nil, fmt.Errorf("database not ready: %w", err)
		}
		store = redisStore
	}

	embedder := buildEmbedder(cfg, store, log)

	var indexStore indexuc.Store
	switch cfg.Index.Store {
	case "redis":
		indexStore = indexrepo.NewRedisStore(store)
	default:
		indexStore = indexrepo.NewFileStore(cfg.Index.Path)
	}

	loader := catalogrepo.NewLoader(
		cfg.Data.Dir, cfg.Data.ProductsFile, cfg.Data.SpecsFile, cfg.Data.ReviewsFile,
	)
	provider := catalogrepo.NewProvider(loader)

	indexSvc := indexuc.New(indexStore, embedder, cfg.Embedding.Model, cfg.Embedding.Dimensions, log)
	retriever := retrieveuc.New(embedder)

	ranker, err := rankuc.New(rankuc.Weights{
		Category: cfg.Ranking.CategoryWeight,
		Price:    cfg.Ranking.PriceWeight,
		Keyword:  cfg.Ranking.KeywordWeight,
		Alpha:    cfg.Ranking.Alpha,
	})
	if err != nil {
		return nil, nil, err
	}

	scorer := sentimentuc.New()
	recSvc := recommenduc.New(
		provider,
		indexSvc,
		retriever,
		ranker,
		summaryuc.New(cfg.Summary.ExcerptChars),
		compareuc.New(cfg.Compare.Limit),
		scorer,
		cfg.Compare.Limit,
	)

	a := &app{
		cfg:       cfg,
		logger:    log,
		store:     store,
		embedder:  embedder,
		catalog:   provider,
		index:     indexSvc,
		retriever: retriever,
		sentiment: scorer,
		recommend: recSvc,
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		_ = log.Sync()
	}
	return a, cleanup, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Timeout.
func buildEmbedder(cfg config.Config, store db.Store, log *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     log,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, log)
	}

	// Timeout outermost so cache hits stay bounded too.
	return domain.NewTimeoutEmbedder(embedder, time.Duration(cfg.Embedding.TimeoutSec)*time.Second)
}
