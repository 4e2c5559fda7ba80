package repository

import (
	"context"

	"github.com/flipcart-next/internal/models"

	"gorm.io/gorm"
)

const maxLoginLogLimit = 100

// UserLoginLogRepository 登录日志数据访问接口
type UserLoginLogRepository interface {
	Create(ctx context.Context, log *models.UserLoginLog) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.UserLoginLog, error)
}

// GormUserLoginLogRepository GORM 实现
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository 创建登录日志仓库
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// Create 写入登录日志
func (r *GormUserLoginLogRepository) Create(ctx context.Context, log *models.UserLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByUser 按时间倒序返回用户最近的登录记录
func (r *GormUserLoginLogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.UserLoginLog, error) {
	if limit <= 0 || limit > maxLoginLogLimit {
		limit = maxLoginLogLimit
	}
	logs := make([]models.UserLoginLog, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
