// Package summary renders a deterministic extractive digest of ranked
// results. No generation model involved: the same input always produces
// byte-identical output.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopsense/shopsense/internal/domain/result"
)

// truncationMarker is appended whenever an excerpt is cut.
const truncationMarker = "..."

// Generator formats ranked results into a text digest.
type Generator struct {
	excerptChars int
}

// New creates a generator. excerptChars bounds the per-item excerpt length.
func New(excerptChars int) *Generator {
	if excerptChars <= 0 {
		excerptChars = 220
	}
	return &Generator{excerptChars: excerptChars}
}

// Generate restates the query and lists each ranked item in order with
// title, category, price, and a bounded excerpt of its document.
func (g *Generator) Generate(query string, ranked []result.RankedResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommendations for %q:\n", query)

	if len(ranked) == 0 {
		b.WriteString("\nNo matching products found.\n")
		return b.String()
	}

	for i := range ranked {
		r := &ranked[i]
		md := r.Meta()
		fmt.Fprintf(&b, "\n%d. %s (%s, Rs %s)\n", i+1, md.Title, md.Category, formatPrice(md.Price))
		fmt.Fprintf(&b, "   %s\n", g.excerpt(r.Document()))
	}

	return b.String()
}

// excerpt returns the first excerptChars characters of text, marking any cut.
func (g *Generator) excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= g.excerptChars {
		return text
	}
	return string(runes[:g.excerptChars]) + truncationMarker
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
