package compare

import (
	"reflect"
	"testing"

	"github.com/shopsense/shopsense/internal/domain/catalog"
	"github.com/shopsense/shopsense/internal/domain/product"
)

func testTables(t *testing.T) (*catalog.ProductTable, *catalog.SpecTable) {
	t.Helper()
	mk := func(id, title, category string, price float64) product.Product {
		p, err := product.New(id, title, category, price, "")
		if err != nil {
			t.Fatalf("product.New(%s): %v", id, err)
		}
		return p
	}
	products, err := catalog.NewProductTable([]product.Product{
		mk("P1", "Headphones X", "Headphones", 14999),
		mk("P2", "Earbuds", "Headphones", 4999),
		mk("P3", "UltraBook", "Laptops", 58999),
		mk("P4", "Camera", "Camera", 10999),
	})
	if err != nil {
		t.Fatalf("NewProductTable: %v", err)
	}

	specs := catalog.NewSpecTable(
		[]string{"battery_life", "weight"},
		map[string]map[string]string{
			"P1": {"battery_life": "30 hours", "weight": "254 g"},
			"P2": {"battery_life": "8 hours", "weight": ""},
		},
	)
	return &products, &specs
}

func TestCompareJoinsSpecsOntoProducts(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	res := svc.Compare(products, specs, []string{"P1", "P2"})

	if !reflect.DeepEqual(res.SpecColumns, []string{"battery_life", "weight"}) {
		t.Errorf("spec columns = %v", res.SpecColumns)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	r := res.Rows[0]
	if r.ProductID != "P1" || r.Title != "Headphones X" || r.Category != "Headphones" || r.Price != "14999" {
		t.Errorf("P1 row = %+v", r)
	}
	if r.Specs["battery_life"] != "30 hours" {
		t.Errorf("P1 battery_life = %q", r.Specs["battery_life"])
	}
	// Empty spec cells render as unavailable.
	if res.Rows[1].Specs["weight"] != Unavailable {
		t.Errorf("P2 weight = %q, want %q", res.Rows[1].Specs["weight"], Unavailable)
	}
}

func TestCompareProductWithoutSpecRow(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	res := svc.Compare(products, specs, []string{"P3"})
	row := res.Rows[0]
	if row.Title != "UltraBook" {
		t.Errorf("title = %q", row.Title)
	}
	for _, col := range res.SpecColumns {
		if row.Specs[col] != Unavailable {
			t.Errorf("spec %q = %q, want %q", col, row.Specs[col], Unavailable)
		}
	}
}

func TestCompareNeverDropsUnknownIDs(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	res := svc.Compare(products, specs, []string{"P1", "P999"})
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	unknown := res.Rows[1]
	if unknown.ProductID != "P999" {
		t.Errorf("id = %q", unknown.ProductID)
	}
	if unknown.Title != Unavailable || unknown.Category != Unavailable || unknown.Price != Unavailable {
		t.Errorf("unknown product attributes = %+v, want all %q", unknown, Unavailable)
	}
}

func TestCompareTruncatesBeforeDedup(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	// Head slice is [P1 P1 P2]; P3 must not slide into the window.
	res := svc.Compare(products, specs, []string{"P1", "P1", "P2", "P3"})

	ids := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		ids = append(ids, r.ProductID)
	}
	if !reflect.DeepEqual(ids, []string{"P1", "P2"}) {
		t.Errorf("ids = %v, want [P1 P2]", ids)
	}
}

func TestComparePreservesInputOrder(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	res := svc.Compare(products, specs, []string{"P3", "P1", "P2"})
	ids := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		ids = append(ids, r.ProductID)
	}
	if !reflect.DeepEqual(ids, []string{"P3", "P1", "P2"}) {
		t.Errorf("ids = %v, want input order", ids)
	}
}

func TestCompareEmptyInput(t *testing.T) {
	products, specs := testTables(t)
	svc := New(3)

	res := svc.Compare(products, specs, nil)
	if len(res.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(res.Rows))
	}
	if !reflect.DeepEqual(res.SpecColumns, []string{"battery_life", "weight"}) {
		t.Errorf("spec columns should still be present, got %v", res.SpecColumns)
	}
}
