package service

import "github.com/flipcart-next/internal/models"

// MergedLineItem 合并后的购物车项
type MergedLineItem struct {
	ProductID models.EntityID `json:"productId"`
	Quantity  int             `json:"quantity"`
}

// MergeCartLines 汇总用户名下所有购物车文档的购物车项
//
// 按商品 ID 去重并累加数量，输出顺序为商品首次出现的顺序。
// 数量为 0（缺省）时按 1 计，负数原样累加。
func MergeCartLines(userID models.EntityID, carts []models.CartDocument) []MergedLineItem {
	merged := make([]MergedLineItem, 0)
	if userID.IsZero() {
		return merged
	}

	index := make(map[models.EntityID]int)
	for _, cart := range carts {
		if cart.UserID != userID {
			continue
		}
		for _, item := range cart.Items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			if pos, ok := index[item.ProductID]; ok {
				merged[pos].Quantity += quantity
				continue
			}
			index[item.ProductID] = len(merged)
			merged = append(merged, MergedLineItem{ProductID: item.ProductID, Quantity: quantity})
		}
	}
	return merged
}
