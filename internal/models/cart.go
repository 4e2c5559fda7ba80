package models

import (
	"time"

	"github.com/flipcart-next/internal/constants"
)

// CartDocument 购物车文档
// 同一用户理论上只有一个 active 文档，但读取侧必须容忍多个
type CartDocument struct {
	ID        EntityID       `gorm:"primaryKey;type:varchar(64)" bson:"_id,omitempty" json:"_id"`                             // 文档ID
	UserID    EntityID       `gorm:"type:varchar(64);not null;index:idx_cart_user_status" bson:"userId" json:"userId"`        // 所属用户
	Status    string         `gorm:"type:varchar(20);not null;index:idx_cart_user_status" bson:"status" json:"status"`        // 状态
	Items     []CartLineItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" bson:"items" json:"items"`                 // 购物车项（有序）
	CreatedAt time.Time      `bson:"createdAt,omitempty" json:"createdAt"`                                                    // 创建时间
	UpdatedAt time.Time      `gorm:"index" bson:"updatedAt" json:"updatedAt"`                                                 // 更新时间
}

// TableName 指定表名
func (CartDocument) TableName() string {
	return "carts"
}

// IsActive 是否为可写入的 active 文档，历史文档缺少 status 时按 active 处理
func (c CartDocument) IsActive() bool {
	return c.Status == constants.CartStatusActive || c.Status == ""
}

// CartLineItem 购物车项（商品弱引用 + 数量）
type CartLineItem struct {
	ID        uint     `gorm:"primaryKey" bson:"-" json:"-"`                                                      // 主键（仅关系库）
	CartID    EntityID `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_line_product" bson:"-" json:"-"`     // 所属文档
	ProductID EntityID `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_line_product" bson:"productId" json:"productId"` // 商品ID
	Quantity  int      `gorm:"not null;default:1" bson:"quantity" json:"quantity"`                                // 数量
}

// TableName 指定表名
func (CartLineItem) TableName() string {
	return "cart_line_items"
}
