package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（外部目录服务的商品形状）
type Product struct {
	ID                 EntityID       `gorm:"primaryKey;type:varchar(64)" json:"id"`                  // 商品ID（外部分配）
	Title              string         `gorm:"type:varchar(255);not null;default:''" json:"title"`     // 标题
	Description        string         `gorm:"type:text" json:"description"`                           // 描述
	Brand              string         `gorm:"type:varchar(128);index" json:"brand"`                   // 品牌
	Category           string         `gorm:"type:varchar(128);index" json:"category"`                // 分类
	Price              Money          `gorm:"type:decimal(24,6);not null;default:0" json:"price"`     // 当前价格
	OriginalPrice      *Money         `gorm:"type:decimal(24,6)" json:"originalPrice,omitempty"`      // 原价（可选）
	DiscountPercentage *float64       `json:"discountPercentage,omitempty"`                           // 折扣百分比（可选）
	Rating             float64        `gorm:"not null;default:0" json:"rating"`                       // 评分
	Stock              int            `gorm:"not null;default:0" json:"stock"`                        // 库存
	Thumbnail          string         `gorm:"type:varchar(512)" json:"thumbnail"`                     // 缩略图
	Deleted            bool           `gorm:"not null;default:false;index" json:"deleted,omitempty"`  // 下架标记
	SortOrder          int            `gorm:"not null;default:0;index" json:"-"`                      // 排序权重
	CreatedAt          time.Time      `gorm:"index" json:"-"`                                         // 创建时间
	UpdatedAt          time.Time      `json:"-"`                                                      // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// CatalogDocument 目录文档（嵌套 products 数组的返回形状）
type CatalogDocument struct {
	Products []Product `json:"products"`
}
