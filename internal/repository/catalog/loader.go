// Package catalog loads the products, specs, and reviews CSV tables into
// typed read-only in-memory tables.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopsense/shopsense/internal/domain"
	"github.com/shopsense/shopsense/internal/domain/catalog"
	"github.com/shopsense/shopsense/internal/domain/product"
)

// Loader reads the source tables from a data directory.
type Loader struct {
	dir          string
	productsFile string
	specsFile    string
	reviewsFile  string
}

// NewLoader creates a loader for the given data directory and file names.
func NewLoader(dir, productsFile, specsFile, reviewsFile string) *Loader {
	return &Loader{dir: dir, productsFile: productsFile, specsFile: specsFile, reviewsFile: reviewsFile}
}

// Load reads all three tables. Products are required; specs and reviews are
// optional best-effort data, so a missing file yields an empty table.
func (l *Loader) Load() (catalog.Tables, error) {
	products, err := l.LoadProducts()
	if err != nil {
		return catalog.Tables{}, err
	}

	specs, err := loadSpecs(filepath.Join(l.dir, l.specsFile))
	if err != nil {
		return catalog.Tables{}, err
	}

	reviews, err := loadReviews(filepath.Join(l.dir, l.reviewsFile))
	if err != nil {
		return catalog.Tables{}, err
	}

	return catalog.Tables{Products: products, Specs: specs, Reviews: reviews}, nil
}

// LoadProducts reads the products table.
func (l *Loader) LoadProducts() (catalog.ProductTable, error) {
	path := filepath.Join(l.dir, l.productsFile)
	header, records, err := readCSV(path)
	if err != nil {
		return catalog.ProductTable{}, fmt.Errorf("read products table: %w", err)
	}

	cols, err := columnIndex(header, "product_id", "title", "category", "price", "description")
	if err != nil {
		return catalog.ProductTable{}, fmt.Errorf("products table %s: %w: %v", path, domain.ErrInvalidTable, err)
	}

	rows := make([]product.Product, 0, len(records))
	for i, rec := range records {
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["price"]]), 64)
		if err != nil {
			return catalog.ProductTable{}, fmt.Errorf(
				"products table %s row %d: %w: bad price %q", path, i+2, domain.ErrInvalidTable, rec[cols["price"]])
		}
		p, err := product.New(
			strings.TrimSpace(rec[cols["product_id"]]),
			rec[cols["title"]],
			rec[cols["category"]],
			price,
			rec[cols["description"]],
		)
		if err != nil {
			return catalog.ProductTable{}, fmt.Errorf("products table %s row %d: %w: %v", path, i+2, domain.ErrInvalidTable, err)
		}
		rows = append(rows, p)
	}

	table, err := catalog.NewProductTable(rows)
	if err != nil {
		return catalog.ProductTable{}, fmt.Errorf("products table %s: %w: %v", path, domain.ErrInvalidTable, err)
	}
	return table, nil
}

// loadSpecs reads the specs table. Every column except product_id is a spec
// attribute; the column order of the source header is preserved.
func loadSpecs(path string) (catalog.SpecTable, error) {
	header, records, err := readCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.NewSpecTable(nil, nil), nil
		}
		return catalog.SpecTable{}, fmt.Errorf("read specs table: %w", err)
	}

	idCol := -1
	columns := make([]string, 0, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "product_id" {
			idCol = i
			continue
		}
		columns = append(columns, strings.TrimSpace(h))
	}
	if idCol < 0 {
		return catalog.SpecTable{}, fmt.Errorf("specs table %s: %w: missing product_id column", path, domain.ErrInvalidTable)
	}

	rows := make(map[string]map[string]string, len(records))
	for _, rec := range records {
		id := strings.TrimSpace(rec[idCol])
		if id == "" {
			continue
		}
		row := make(map[string]string, len(columns))
		col := 0
		for i, v := range rec {
			if i == idCol {
				continue
			}
			row[columns[col]] = v
			col++
		}
		// first row wins on duplicate ids: zero or one spec row per product
		if _, ok := rows[id]; !ok {
			rows[id] = row
		}
	}

	return catalog.NewSpecTable(columns, rows), nil
}

// loadReviews reads the reviews table.
func loadReviews(path string) (catalog.ReviewTable, error) {
	header, records, err := readCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.NewReviewTable(nil), nil
		}
		return catalog.ReviewTable{}, fmt.Errorf("read reviews table: %w", err)
	}

	cols, err := columnIndex(header, "product_id", "stars", "review_text")
	if err != nil {
		return catalog.ReviewTable{}, fmt.Errorf("reviews table %s: %w: %v", path, domain.ErrInvalidTable, err)
	}

	rows := make([]catalog.Review, 0, len(records))
	for i, rec := range records {
		stars, err := strconv.Atoi(strings.TrimSpace(rec[cols["stars"]]))
		if err != nil || stars < 1 || stars > 5 {
			return catalog.ReviewTable{}, fmt.Errorf(
				"reviews table %s row %d: %w: stars must be 1-5, got %q", path, i+2, domain.ErrInvalidTable, rec[cols["stars"]])
		}
		rows = append(rows, catalog.Review{
			ProductID: strings.TrimSpace(rec[cols["product_id"]]),
			Stars:     stars,
			Text:      rec[cols["review_text"]],
		})
	}

	return catalog.NewReviewTable(rows), nil
}

// readCSV reads a CSV file and returns its header and data records.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("%s: empty file", path)
		}
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read rows: %w", path, err)
	}
	return header, records, nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}
