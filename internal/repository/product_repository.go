package repository

import (
	"context"
	"errors"

	"github.com/flipcart-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id models.EntityID) (*models.Product, error)
	Upsert(ctx context.Context, products []models.Product) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ListAll 按排序权重返回全部未软删除商品
func (r *GormProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("sort_order DESC, created_at ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品，不存在时返回 nil
func (r *GormProductRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Upsert 批量写入商品，ID 冲突时覆盖
func (r *GormProductRepository) Upsert(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&products).Error
}
