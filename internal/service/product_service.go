package service

import (
	"context"
	"fmt"

	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/models"
)

// ProductService 商品浏览与搜索服务
type ProductService struct {
	source catalog.Source
}

// NewProductService 创建商品服务
func NewProductService(source catalog.Source) *ProductService {
	return &ProductService{source: source}
}

// List 按条件列出商品
func (s *ProductService) List(ctx context.Context, query catalog.Query) ([]models.Product, error) {
	products, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return catalog.Filter(products, query), nil
}

// Categories 列出全部分类
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return catalog.Categories(products), nil
}
