package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
		{"id": 1, "name": "Tote Bag", "brand": "Acme", "price": 150, "offer_price": 120,
		 "sku": "ACM-001", "slug": "tote-bag", "is_in_stock": true,
		 "media": [{"image_url": "/media/tote.jpg", "alt": "Tote"}],
		 "description": {"root": {"children": []}}},
		{"id": 2, "name": "Mug", "brand": "Acme", "price": 50, "sku": "ACM-002",
		 "slug": "mug", "is_in_stock": false},
		{"id": 1, "name": "Duplicate", "price": 1, "sku": "DUP", "slug": "dup"}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("Expected duplicate id dropped, got %d products", c.Len())
	}

	p, ok := c.BySlug("tote-bag")
	if !ok {
		t.Fatal("Expected tote-bag to be found by slug")
	}
	if p.EffectivePrice() != 120 {
		t.Errorf("Expected offer price 120, got %v", p.EffectivePrice())
	}
	if p.Thumbnail() != "/media/tote.jpg" {
		t.Errorf("Expected first media thumbnail, got '%s'", p.Thumbnail())
	}
	if len(p.Description) == 0 {
		t.Error("Expected raw description payload to be carried through")
	}

	mug, ok := c.ByID(2)
	if !ok {
		t.Fatal("Expected mug to be found by id")
	}
	if mug.EffectivePrice() != 50 {
		t.Errorf("Expected list price 50, got %v", mug.EffectivePrice())
	}
	if mug.Thumbnail() != PlaceholderImage {
		t.Errorf("Expected placeholder thumbnail, got '%s'", mug.Thumbnail())
	}

	if _, ok := c.BySlug("missing"); ok {
		t.Error("Expected missing slug to report not found")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestProducts_ReturnsCopyInOrder(t *testing.T) {
	c := New()
	c.Add(Product{ID: 1, Slug: "a"})
	c.Add(Product{ID: 2, Slug: "b"})

	products := c.Products()
	if len(products) != 2 || products[0].ID != 1 || products[1].ID != 2 {
		t.Fatalf("Expected load order [1 2], got %+v", products)
	}

	products[0].Name = "mutated"
	if fresh, _ := c.ByID(1); fresh.Name == "mutated" {
		t.Error("Mutating the returned slice leaked into the catalog")
	}
}
