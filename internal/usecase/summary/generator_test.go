package summary

import (
	"strings"
	"testing"

	"github.com/shopsense/shopsense/internal/domain/index"
	"github.com/shopsense/shopsense/internal/domain/result"
)

func ranked(id, title, category string, price float64, document string) result.RankedResult {
	sr := result.NewSearch(id, document, index.Metadata{
		ProductID: id,
		Title:     title,
		Category:  category,
		Price:     price,
	}, 0.5)
	return result.NewRanked(sr, 0.5, 0.5)
}

func TestGenerateListsItemsInOrder(t *testing.T) {
	g := New(220)
	items := []result.RankedResult{
		ranked("P1", "Headphones X", "Headphones", 14999, "Over-ear wireless headphones."),
		ranked("P2", "UltraBook Air", "Laptops", 58999, "Thin and light laptop."),
	}

	got := g.Generate("travel gear", items)

	if !strings.HasPrefix(got, "Recommendations for \"travel gear\":\n") {
		t.Errorf("missing query restatement, got %q", got)
	}
	first := strings.Index(got, "1. Headphones X (Headphones, Rs 14999)")
	second := strings.Index(got, "2. UltraBook Air (Laptops, Rs 58999)")
	if first == -1 || second == -1 || second < first {
		t.Errorf("items missing or out of order:\n%s", got)
	}
	if !strings.Contains(got, "Over-ear wireless headphones.") {
		t.Errorf("missing excerpt:\n%s", got)
	}
}

func TestGenerateEmptyResults(t *testing.T) {
	g := New(220)
	got := g.Generate("nothing", nil)
	if !strings.Contains(got, "No matching products found.") {
		t.Errorf("empty input should state that nothing matched, got %q", got)
	}
	if !strings.Contains(got, "\"nothing\"") {
		t.Errorf("query should still be restated, got %q", got)
	}
}

func TestGenerateTruncatesLongDocuments(t *testing.T) {
	g := New(10)
	items := []result.RankedResult{
		ranked("P1", "T", "C", 1, "0123456789ABCDEF"),
	}
	got := g.Generate("q", items)
	if !strings.Contains(got, "0123456789...") {
		t.Errorf("excerpt should be cut at the limit with a marker:\n%s", got)
	}
	if strings.Contains(got, "ABCDEF") {
		t.Errorf("text past the limit must not appear:\n%s", got)
	}
}

func TestGenerateShortDocumentNotMarked(t *testing.T) {
	g := New(100)
	items := []result.RankedResult{
		ranked("P1", "T", "C", 1, "short text"),
	}
	got := g.Generate("q", items)
	if strings.Contains(got, "short text...") {
		t.Errorf("untruncated excerpt must not carry a marker:\n%s", got)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := New(220)
	items := []result.RankedResult{
		ranked("P1", "A", "X", 10, "doc a"),
		ranked("P2", "B", "Y", 20.5, "doc b"),
	}
	first := g.Generate("q", items)
	for i := 0; i < 5; i++ {
		if g.Generate("q", items) != first {
			t.Fatal("identical inputs must produce byte-identical summaries")
		}
	}
}

func TestGeneratePriceFormatting(t *testing.T) {
	g := New(220)
	got := g.Generate("q", []result.RankedResult{
		ranked("P1", "T", "C", 3499.5, "doc"),
	})
	if !strings.Contains(got, "Rs 3499.5") {
		t.Errorf("fractional price should print without padding:\n%s", got)
	}
}
