package service

import "github.com/flipcart-next/internal/models"

// EnrichedLineItem 关联商品信息后的购物车项
// 商品缺失时 Product 为空，仅保留 productId / quantity / missing
type EnrichedLineItem struct {
	*models.Product
	ProductID models.EntityID `json:"productId"`
	Quantity  int             `json:"quantity"`
	Missing   bool            `json:"missing,omitempty"`
}

// ReconcileCartLines 按商品 ID 将购物车项与目录关联
// 目录中重复的 ID 以第一个为准；找不到的商品输出占位项而不是报错
func ReconcileCartLines(merged []MergedLineItem, products []models.Product) []EnrichedLineItem {
	index := make(map[models.EntityID]int, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			continue
		}
		if _, exists := index[products[i].ID]; !exists {
			index[products[i].ID] = i
		}
	}

	enriched := make([]EnrichedLineItem, 0, len(merged))
	for _, item := range merged {
		line := EnrichedLineItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if pos, ok := index[item.ProductID]; ok {
			product := products[pos]
			line.Product = &product
		} else {
			line.Missing = true
		}
		enriched = append(enriched, line)
	}
	return enriched
}
