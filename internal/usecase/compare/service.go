// Package compare joins products with their spec rows into a side-by-side
// attribute table for a small set of product ids.
package compare

import (
	"strconv"

	"github.com/shopsense/shopsense/internal/domain/catalog"
)

// Unavailable marks spec attributes with no value for a product.
const Unavailable = "unavailable"

// Row is one compared product: its catalog attributes plus every spec
// attribute of the specs table, in spec column order.
type Row struct {
	ProductID string
	Title     string
	Category  string
	Price     string
	Specs     map[string]string // keyed by SpecColumns of the result
}

// Result is an ordered comparison with the shared spec column list.
type Result struct {
	SpecColumns []string
	Rows        []Row
}

// Service performs product comparisons.
type Service struct {
	limit int
}

// New creates a comparator. limit bounds how many ids are compared; the
// comparison table is wide, so the original caps it at a small number.
func New(limit int) *Service {
	if limit <= 0 {
		limit = 3
	}
	return &Service{limit: limit}
}

// Compare left-joins specs onto products for the first limit ids.
// Truncation happens before dedup, mirroring the caller policy of comparing
// only a head slice of the ranking; duplicates within that head collapse to
// their first occurrence. Output order follows the input order. An id with
// no spec row still produces a row with every spec attribute marked
// unavailable, and an id missing from the products table renders its
// product attributes as unavailable too; comparison never drops an id.
func (s *Service) Compare(products *catalog.ProductTable, specs *catalog.SpecTable, productIDs []string) Result {
	res := Result{SpecColumns: specs.Columns()}

	ids := productIDs
	if len(ids) > s.limit {
		ids = ids[:s.limit]
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		row := Row{
			ProductID: id,
			Title:     Unavailable,
			Category:  Unavailable,
			Price:     Unavailable,
			Specs:     make(map[string]string, len(res.SpecColumns)),
		}
		if p, ok := products.Get(id); ok {
			row.Title = p.Title()
			row.Category = p.Category()
			row.Price = strconv.FormatFloat(p.Price(), 'f', -1, 64)
		}

		specRow, hasSpecs := specs.Get(id)
		for _, col := range res.SpecColumns {
			val := Unavailable
			if hasSpecs {
				if v, ok := specRow[col]; ok && v != "" {
					val = v
				}
			}
			row.Specs[col] = val
		}

		res.Rows = append(res.Rows, row)
	}

	return res
}
