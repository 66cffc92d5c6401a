// Package catalog holds the read-only source tables the engine consumes:
// products, specs, and reviews.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopsense/shopsense/internal/domain/product"
)

// Tables bundles the three source tables loaded from one data directory.
type Tables struct {
	Products ProductTable
	Specs    SpecTable
	Reviews  ReviewTable
}

// ProductTable is the products source table: ordered rows plus an id lookup.
type ProductTable struct {
	rows []product.Product
	byID map[string]int
}

// NewProductTable builds a table from rows, rejecting duplicate ids.
func NewProductTable(rows []product.Product) (ProductTable, error) {
	byID := make(map[string]int, len(rows))
	for i, p := range rows {
		if _, ok := byID[p.ID()]; ok {
			return ProductTable{}, fmt.Errorf("duplicate product id %q", p.ID())
		}
		byID[p.ID()] = i
	}
	return ProductTable{rows: rows, byID: byID}, nil
}

// Len returns the number of products.
func (t *ProductTable) Len() int { return len(t.rows) }

// Rows returns the products in table order.
func (t *ProductTable) Rows() []product.Product { return t.rows }

// Get returns the product with the given id.
func (t *ProductTable) Get(id string) (product.Product, bool) {
	i, ok := t.byID[id]
	if !ok {
		return product.Product{}, false
	}
	return t.rows[i], true
}

// Canonical returns a deterministic serialization of the table contents,
// used as input to the index build signature. Row order follows the table.
func (t *ProductTable) Canonical() []byte {
	var b strings.Builder
	for _, p := range t.rows {
		b.WriteString(p.ID())
		b.WriteByte('\x1f')
		b.WriteString(p.Title())
		b.WriteByte('\x1f')
		b.WriteString(p.Category())
		b.WriteByte('\x1f')
		b.WriteString(strconv.FormatFloat(p.Price(), 'g', -1, 64))
		b.WriteByte('\x1f')
		b.WriteString(p.Description())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// SpecTable is the specs source table: zero or one row per product id,
// with a dynamic attribute column set. Column order follows the source header.
type SpecTable struct {
	columns []string
	rows    map[string]map[string]string
}

// NewSpecTable builds a spec table from attribute columns and per-id rows.
func NewSpecTable(columns []string, rows map[string]map[string]string) SpecTable {
	return SpecTable{columns: columns, rows: rows}
}

// Columns returns the spec attribute names in source order (product_id excluded).
func (t *SpecTable) Columns() []string { return t.columns }

// Get returns the spec row for a product id; absence is valid.
func (t *SpecTable) Get(id string) (map[string]string, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// Review is one row of the reviews table.
type Review struct {
	ProductID string
	Stars     int
	Text      string
}

// ReviewTable is the reviews source table: zero or many rows per product.
type ReviewTable struct {
	rows []Review
}

// NewReviewTable builds a review table.
func NewReviewTable(rows []Review) ReviewTable {
	return ReviewTable{rows: rows}
}

// Rows returns all reviews in table order.
func (t *ReviewTable) Rows() []Review { return t.rows }

// ForProducts returns reviews whose product id is in ids, preserving table order.
func (t *ReviewTable) ForProducts(ids []string) []Review {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Review
	for _, r := range t.rows {
		if want[r.ProductID] {
			out = append(out, r)
		}
	}
	return out
}
