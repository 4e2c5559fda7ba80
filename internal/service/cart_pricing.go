package service

import (
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/models"
)

// PriceSummary 购物车价格汇总
type PriceSummary struct {
	ItemCount   int          `json:"itemCount"`
	Subtotal    models.Money `json:"subtotal"`
	Discount    models.Money `json:"discount"`
	PlatformFee models.Money `json:"platformFee"`
	Total       models.Money `json:"total"`
	Savings     models.Money `json:"savings"`
}

// CartPricer 价格计算规则
type CartPricer struct {
	PlatformFee           models.Money
	ClampNegativeDiscount bool
}

// DefaultCartPricer 平台费为默认值、不截断负折扣
func DefaultCartPricer() CartPricer {
	return CartPricer{PlatformFee: models.NewMoneyFromInt(constants.DefaultPlatformFee)}
}

// PriceCart 使用默认规则计算价格
func PriceCart(items []EnrichedLineItem) PriceSummary {
	return DefaultCartPricer().Price(items)
}

// Price 计算小计、折扣、平台费与总价
//
//	subtotal = Σ 原价 × 数量（无原价时取现价）
//	discount = Σ (原价 - 现价) × 数量
//	total    = subtotal - discount + platformFee
func (p CartPricer) Price(items []EnrichedLineItem) PriceSummary {
	subtotal := models.Money{}
	discount := models.Money{}
	for _, item := range items {
		if item.Missing || item.Product == nil {
			continue
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		price := item.Product.Price
		original := price
		if item.Product.OriginalPrice != nil && !item.Product.OriginalPrice.IsZero() {
			original = *item.Product.OriginalPrice
		}

		itemDiscount := original.Minus(price).Times(quantity)
		if p.ClampNegativeDiscount && itemDiscount.IsNegative() {
			itemDiscount = models.Money{}
		}
		subtotal = subtotal.Plus(original.Times(quantity))
		discount = discount.Plus(itemDiscount)
	}

	return PriceSummary{
		ItemCount:   len(items),
		Subtotal:    subtotal,
		Discount:    discount,
		PlatformFee: p.PlatformFee,
		Total:       subtotal.Minus(discount).Plus(p.PlatformFee),
		Savings:     discount,
	}
}
