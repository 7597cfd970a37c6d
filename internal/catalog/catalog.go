// Package catalog models the product data supplied by the external catalog
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Media is one product image reference
type Media struct {
	ImageURL string `json:"image_url"`
	Alt      string `json:"alt,omitempty"`
}

// Product is a single catalog entry. Description holds the raw structured
// document payload; the catalog never interprets it.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Price       float64         `json:"price"`
	OfferPrice  float64         `json:"offer_price,omitempty"`
	SKU         string          `json:"sku"`
	Slug        string          `json:"slug"`
	IsInStock   bool            `json:"is_in_stock"`
	TopPick     bool            `json:"top_pick,omitempty"`
	NewArrival  bool            `json:"new_arrival,omitempty"`
	Media       []Media         `json:"media,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
}

// EffectivePrice returns the price a buyer pays: the offer price when one is
// set, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}

// Thumbnail returns the first media entry's image URL, or the placeholder
// sentinel when the product has no media.
func (p *Product) Thumbnail() string {
	if len(p.Media) > 0 && p.Media[0].ImageURL != "" {
		return p.Media[0].ImageURL
	}
	return PlaceholderImage
}

// PlaceholderImage is the sentinel used when a product carries no media.
const PlaceholderImage = "/product-img-placeholder.svg"

// Catalog is a read-only product collection loaded at startup
type Catalog struct {
	mu       sync.RWMutex
	products []Product
	bySlug   map[string]int
	byID     map[int]int
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		bySlug: make(map[string]int),
		byID:   make(map[int]int),
	}
}

// LoadFile loads a catalog from a JSON file containing a product array.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	c := New()
	for _, p := range products {
		c.add(p)
	}
	return c, nil
}

func (c *Catalog) add(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[p.ID]; exists {
		return
	}
	c.products = append(c.products, p)
	idx := len(c.products) - 1
	c.byID[p.ID] = idx
	if p.Slug != "" {
		c.bySlug[p.Slug] = idx
	}
}

// Add registers a product; entries with a duplicate ID are ignored.
func (c *Catalog) Add(p Product) {
	c.add(p)
}

// Products returns all entries in load order
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// BySlug looks a product up by its slug
func (c *Catalog) BySlug(slug string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.bySlug[slug]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// ByID looks a product up by its numeric ID
func (c *Catalog) ByID(id int) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len returns the number of products loaded
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
