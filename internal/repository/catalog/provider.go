package catalog

import (
	"fmt"
	"sync"

	"github.com/shopsense/shopsense/internal/domain/catalog"
)

// Provider serves the loaded tables and supports reloading them when the
// source files change. Reads share a snapshot; Reload swaps it atomically.
type Provider struct {
	loader *Loader

	mu     sync.RWMutex
	tables catalog.Tables
	loaded bool
}

// NewProvider creates a lazy-loading table provider.
func NewProvider(loader *Loader) *Provider {
	return &Provider{loader: loader}
}

// Tables returns the current tables, loading them on first use.
func (p *Provider) Tables() (catalog.Tables, error) {
	p.mu.RLock()
	if p.loaded {
		t := p.tables
		p.mu.RUnlock()
		return t, nil
	}
	p.mu.RUnlock()

	return p.Reload()
}

// Reload re-reads the tables from disk and publishes them.
func (p *Provider) Reload() (catalog.Tables, error) {
	tables, err := p.loader.Load()
	if err != nil {
		return catalog.Tables{}, fmt.Errorf("load tables: %w", err)
	}

	p.mu.Lock()
	p.tables = tables
	p.loaded = true
	p.mu.Unlock()

	return tables, nil
}
