// Package prefs defines the per-request preference set used for re-ranking.
package prefs

import "strings"

// anyCategory is the caller-facing wildcard for "no category preference".
const anyCategory = "any"

// Preferences is a validated, immutable preference set.
// An inverted price band (min > max) means "no price preference": the
// reranker must not penalize any item for price in that case.
type Preferences struct {
	category string
	minPrice float64
	maxPrice float64
	keywords []string
}

// New creates a preference set. category "" or "any" (case-insensitive)
// means no category preference. keywordsCSV is split on commas, tokens are
// trimmed and empty tokens discarded.
func New(category string, minPrice, maxPrice float64, keywordsCSV string) Preferences {
	c := strings.TrimSpace(category)
	if strings.EqualFold(c, anyCategory) {
		c = ""
	}
	return Preferences{
		category: c,
		minPrice: minPrice,
		maxPrice: maxPrice,
		keywords: ParseKeywords(keywordsCSV),
	}
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and discarding empty tokens.
func ParseKeywords(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			out = append(out, kw)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Category returns the preferred category, "" when unset.
func (p *Preferences) Category() string { return p.category }

// HasCategory reports whether a category preference is set.
func (p *Preferences) HasCategory() bool { return p.category != "" }

// MatchesCategory reports whether the given category satisfies the
// preference. An unset preference matches everything; comparison is
// case-insensitive.
func (p *Preferences) MatchesCategory(category string) bool {
	if !p.HasCategory() {
		return true
	}
	return strings.EqualFold(p.category, category)
}

// MinPrice returns the lower price bound.
func (p *Preferences) MinPrice() float64 { return p.minPrice }

// MaxPrice returns the upper price bound.
func (p *Preferences) MaxPrice() float64 { return p.maxPrice }

// PriceBandInverted reports whether min > max, which disables the price criterion.
func (p *Preferences) PriceBandInverted() bool { return p.minPrice > p.maxPrice }

// InPriceBand reports whether price falls inside the preferred band.
// An inverted band accepts every price.
func (p *Preferences) InPriceBand(price float64) bool {
	if p.PriceBandInverted() {
		return true
	}
	return price >= p.minPrice && price <= p.maxPrice
}

// Keywords returns the parsed keyword list in input order.
func (p *Preferences) Keywords() []string { return p.keywords }
