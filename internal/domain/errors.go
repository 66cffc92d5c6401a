package domain

import "errors"

var (
	// ErrIndexNotFound signals that no persisted index snapshot exists.
	ErrIndexNotFound = errors.New("index not found")
	// ErrVectorDimMismatch signals a vector dimension mismatch between query and index.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrProductNotFound signals a missing product row.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidTable signals a malformed source table.
	ErrInvalidTable = errors.New("invalid table")
)
