// Package product defines the catalog product value object.
package product

import (
	"fmt"
	"strings"
)

// Product is one row of the products table.
// product_id is unique within a catalog; price is non-negative.
type Product struct {
	id          string
	title       string
	category    string
	price       float64
	description string
}

// New creates a validated product.
func New(id, title, category string, price float64, description string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, fmt.Errorf("product id is required")
	}
	if price < 0 {
		return Product{}, fmt.Errorf("product %s: price must be non-negative, got %v", id, price)
	}
	return Product{
		id:          id,
		title:       title,
		category:    category,
		price:       price,
		description: description,
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Category returns the product category.
func (p *Product) Category() string { return p.category }

// Price returns the product price.
func (p *Product) Price() float64 { return p.price }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// EmbeddingText is the canonical text embedded for this product:
// title followed by description. Changing this invalidates every
// persisted index, so it is defined in exactly one place.
func (p *Product) EmbeddingText() string {
	if p.description == "" {
		return p.title
	}
	return p.title + ". " + p.description
}
