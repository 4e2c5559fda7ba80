package repository

import (
	"context"
	"errors"
	"time"

	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车文档数据访问接口
// 关系库与 Mongo 两种实现语义一致
type CartRepository interface {
	ListAll(ctx context.Context) ([]models.CartDocument, error)
	ListByUser(ctx context.Context, userID models.EntityID) ([]models.CartDocument, error)
	// AddItem 原子地对 (user, active) 购物车执行“存在则累加，否则追加”，返回变更后的文档
	AddItem(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error)
	// DeleteByID 按文档 ID 删除，返回删除条数
	DeleteByID(ctx context.Context, id models.EntityID) (int64, error)
	// Consolidate 将 dropIDs 文档的购物车项累加进 keepID 文档后删除 dropIDs，返回迁移的商品数
	Consolidate(ctx context.Context, keepID models.EntityID, dropIDs []models.EntityID) (int, error)
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// ListAll 获取全部购物车文档
func (r *GormCartRepository) ListAll(ctx context.Context) ([]models.CartDocument, error) {
	var carts []models.CartDocument
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).Order("created_at ASC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// ListByUser 获取用户全部购物车文档（不限状态）
func (r *GormCartRepository) ListByUser(ctx context.Context, userID models.EntityID) ([]models.CartDocument, error) {
	var carts []models.CartDocument
	err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// AddItem 事务内完成 active 购物车定位与购物车项 upsert
func (r *GormCartRepository) AddItem(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error) {
	cart, err := r.addItemOnce(ctx, userID, productID, quantity)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发首次创建，另一方已建好 active 购物车
		cart, err = r.addItemOnce(ctx, userID, productID, quantity)
	}
	return cart, err
}

func (r *GormCartRepository) addItemOnce(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error) {
	var cart models.CartDocument
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Where("user_id = ? AND status = ?", userID, constants.CartStatusActive).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.CartDocument{
				ID:        models.EntityID(uuid.NewString()),
				UserID:    userID,
				Status:    constants.CartStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			err = tx.Omit("Items").Create(&cart).Error
		}
		if err != nil {
			return err
		}

		line := models.CartLineItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_line_items.quantity + excluded.quantity"),
			}),
		}).Create(&line).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.CartDocument{}).Where("id = ?", cart.ID).Update("updated_at", now).Error; err != nil {
			return err
		}
		return tx.Preload("Items", preloadItems).First(&cart, "id = ?", cart.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteByID 删除购物车文档及其购物车项
func (r *GormCartRepository) DeleteByID(ctx context.Context, id models.EntityID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.CartDocument{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("cart_id = ?", id).Delete(&models.CartLineItem{}).Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Consolidate 在事务内把待删除文档的购物车项逐条累加到保留文档
// 保留文档已有的购物车项不被覆盖，并发写入的加购不会丢失
func (r *GormCartRepository) Consolidate(ctx context.Context, keepID models.EntityID, dropIDs []models.EntityID) (int, error) {
	moved := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var keep models.CartDocument
		if err := tx.Where("id = ?", keepID).First(&keep).Error; err != nil {
			return err
		}
		if len(dropIDs) == 0 {
			return nil
		}

		var dropped []models.CartLineItem
		if err := tx.Where("cart_id IN ?", dropIDs).Order("id ASC").Find(&dropped).Error; err != nil {
			return err
		}
		// 数量 0 在视图中按 1 计，累加前先落实
		if err := tx.Model(&models.CartLineItem{}).
			Where("cart_id = ? AND quantity = ?", keepID, 0).
			Update("quantity", 1).Error; err != nil {
			return err
		}
		for _, item := range sumLinesByProduct(dropped) {
			line := models.CartLineItem{CartID: keepID, ProductID: item.ProductID, Quantity: item.Quantity}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("cart_line_items.quantity + excluded.quantity"),
				}),
			}).Create(&line).Error; err != nil {
				return err
			}
			moved++
		}

		if err := tx.Where("cart_id IN ?", dropIDs).Delete(&models.CartLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", dropIDs).Delete(&models.CartDocument{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.CartDocument{}).Where("id = ?", keepID).Updates(map[string]interface{}{
			"status":     constants.CartStatusActive,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// sumLinesByProduct 按商品累加数量，保持首次出现顺序，数量 0 按 1 计
func sumLinesByProduct(lines []models.CartLineItem) []models.CartLineItem {
	summed := make([]models.CartLineItem, 0, len(lines))
	index := make(map[models.EntityID]int, len(lines))
	for _, line := range lines {
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if pos, ok := index[line.ProductID]; ok {
			summed[pos].Quantity += quantity
			continue
		}
		index[line.ProductID] = len(summed)
		summed = append(summed, models.CartLineItem{ProductID: line.ProductID, Quantity: quantity})
	}
	return summed
}
