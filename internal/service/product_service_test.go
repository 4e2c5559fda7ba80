package service

import (
	"context"
	"errors"
	"testing"

	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/models"
)

func TestProductServiceListAndCategories(t *testing.T) {
	source := &staticCatalog{products: []models.Product{
		{ID: "1", Title: "Phone", Category: "smartphones"},
		{ID: "2", Title: "Laptop", Category: "laptops"},
		{ID: "3", Title: "Phone case", Category: "smartphones"},
	}}
	svc := NewProductService(source)

	products, err := svc.List(context.Background(), catalog.Query{Keyword: "phone"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 phone matches, got %d", len(products))
	}

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "smartphones" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestProductServiceWrapsCatalogErrors(t *testing.T) {
	svc := NewProductService(&staticCatalog{err: errors.New("boom")})
	if _, err := svc.List(context.Background(), catalog.Query{}); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
