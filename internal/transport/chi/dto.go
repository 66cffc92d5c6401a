package chi

import (
	"github.com/shopsense/shopsense/internal/usecase/compare"
	"github.com/shopsense/shopsense/internal/usecase/recommend"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type itemResponse struct {
	ProductID       string  `json:"product_id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	Similarity      float64 `json:"similarity"`
	PreferenceScore float64 `json:"preference_score"`
	FinalScore      float64 `json:"final_score"`
}

type comparisonResponse struct {
	SpecColumns []string                `json:"spec_columns"`
	Rows        []comparisonRowResponse `json:"rows"`
}

type comparisonRowResponse struct {
	ProductID string            `json:"product_id"`
	Title     string            `json:"title"`
	Category  string            `json:"category"`
	Price     string            `json:"price"`
	Specs     map[string]string `json:"specs"`
}

type reviewResponse struct {
	ProductID string  `json:"product_id"`
	Stars     int     `json:"stars"`
	Text      string  `json:"review_text"`
	Sentiment float64 `json:"sentiment"`
}

type reviewsResponse struct {
	ProductID string           `json:"product_id"`
	Reviews   []reviewResponse `json:"reviews"`
}

type recommendationResponse struct {
	Query        string             `json:"query"`
	Items        []itemResponse     `json:"items"`
	Summary      string             `json:"summary"`
	Comparison   comparisonResponse `json:"comparison"`
	ReviewSample []reviewResponse   `json:"review_sample"`
}

func recommendationToResponse(query string, rec recommend.Recommendation) recommendationResponse {
	resp := recommendationResponse{
		Query:      query,
		Items:      make([]itemResponse, 0, len(rec.Items)),
		Summary:    rec.Summary,
		Comparison: comparisonToResponse(rec.Comparison),
	}
	for i := range rec.Items {
		item := &rec.Items[i]
		md := item.Meta()
		resp.Items = append(resp.Items, itemResponse{
			ProductID:       item.ProductID(),
			Title:           md.Title,
			Category:        md.Category,
			Price:           md.Price,
			Similarity:      item.Similarity(),
			PreferenceScore: item.PreferenceScore(),
			FinalScore:      item.FinalScore(),
		})
	}
	for _, sr := range rec.ReviewSample {
		resp.ReviewSample = append(resp.ReviewSample, reviewResponse{
			ProductID: sr.Review.ProductID,
			Stars:     sr.Review.Stars,
			Text:      sr.Review.Text,
			Sentiment: sr.Sentiment,
		})
	}
	return resp
}

func comparisonToResponse(comp compare.Result) comparisonResponse {
	resp := comparisonResponse{
		SpecColumns: comp.SpecColumns,
		Rows:        make([]comparisonRowResponse, 0, len(comp.Rows)),
	}
	for _, row := range comp.Rows {
		resp.Rows = append(resp.Rows, comparisonRowResponse{
			ProductID: row.ProductID,
			Title:     row.Title,
			Category:  row.Category,
			Price:     row.Price,
			Specs:     row.Specs,
		})
	}
	return resp
}
