// Package index defines the persisted vector index snapshot and its entries.
package index

import "fmt"

// Metadata is the immutable attribute snapshot stored with each entry.
// It mirrors the product row exactly as of build time; there is no live
// join against the products table at query time.
type Metadata struct {
	ProductID string
	Title     string
	Category  string
	Price     float64
}

// Entry is one indexed product: id, embedding vector, metadata snapshot,
// and the exact text that was embedded.
type Entry struct {
	productID string
	document  string
	vector    []float32
	meta      Metadata
}

// NewEntry creates an index entry.
func NewEntry(productID, document string, vector []float32, meta Metadata) Entry {
	return Entry{productID: productID, document: document, vector: vector, meta: meta}
}

// ProductID returns the product identifier.
func (e *Entry) ProductID() string { return e.productID }

// Document returns the embedded source text.
func (e *Entry) Document() string { return e.document }

// Vector returns the embedding vector.
func (e *Entry) Vector() []float32 { return e.vector }

// Meta returns the metadata snapshot.
func (e *Entry) Meta() Metadata { return e.meta }

// Snapshot is a complete, immutable index state: every entry plus the build
// signature used to detect staleness against the products table.
type Snapshot struct {
	signature  string
	model      string
	dimensions int
	entries    []Entry
}

// NewSnapshot creates a snapshot, checking that every entry vector matches
// the declared dimension.
func NewSnapshot(signature, model string, dimensions int, entries []Entry) (Snapshot, error) {
	if dimensions <= 0 {
		return Snapshot{}, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	for i := range entries {
		if len(entries[i].vector) != dimensions {
			return Snapshot{}, fmt.Errorf(
				"entry %s: vector has %d dimensions, snapshot declares %d",
				entries[i].productID, len(entries[i].vector), dimensions,
			)
		}
	}
	return Snapshot{signature: signature, model: model, dimensions: dimensions, entries: entries}, nil
}

// Signature returns the build signature.
func (s *Snapshot) Signature() string { return s.signature }

// Model returns the embedding model the snapshot was built with.
func (s *Snapshot) Model() string { return s.model }

// Dimensions returns the vector dimension shared by all entries.
func (s *Snapshot) Dimensions() int { return s.dimensions }

// Entries returns the index entries in build order.
func (s *Snapshot) Entries() []Entry { return s.entries }

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }
