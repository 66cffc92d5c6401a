package index

import (
	"encoding/json"
	"fmt"

	domidx "github.com/shopsense/shopsense/internal/domain/index"
)

// snapshotDTO is the persisted JSON form of an index snapshot.
type snapshotDTO struct {
	Signature  string     `json:"signature"`
	Model      string     `json:"model"`
	Dimensions int        `json:"dimensions"`
	Entries    []entryDTO `json:"entries"`
}

type entryDTO struct {
	ProductID string      `json:"product_id"`
	Document  string      `json:"document"`
	Vector    []float32   `json:"vector"`
	Metadata  metadataDTO `json:"metadata"`
}

type metadataDTO struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

func encodeSnapshot(snap domidx.Snapshot) ([]byte, error) {
	dto := snapshotDTO{
		Signature:  snap.Signature(),
		Model:      snap.Model(),
		Dimensions: snap.Dimensions(),
		Entries:    make([]entryDTO, 0, snap.Len()),
	}
	for _, e := range snap.Entries() {
		m := e.Meta()
		dto.Entries = append(dto.Entries, entryDTO{
			ProductID: e.ProductID(),
			Document:  e.Document(),
			Vector:    e.Vector(),
			Metadata: metadataDTO{
				ProductID: m.ProductID,
				Title:     m.Title,
				Category:  m.Category,
				Price:     m.Price,
			},
		})
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (domidx.Snapshot, error) {
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domidx.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	entries := make([]domidx.Entry, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		entries = append(entries, domidx.NewEntry(e.ProductID, e.Document, e.Vector, domidx.Metadata{
			ProductID: e.Metadata.ProductID,
			Title:     e.Metadata.Title,
			Category:  e.Metadata.Category,
			Price:     e.Metadata.Price,
		}))
	}

	snap, err := domidx.NewSnapshot(dto.Signature, dto.Model, dto.Dimensions, entries)
	if err != nil {
		return domidx.Snapshot{}, fmt.Errorf("reconstruct snapshot: %w", err)
	}
	return snap, nil
}
