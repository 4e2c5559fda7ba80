package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/repository"
)

// LoginAttempt 一次登录尝试的上下文
type LoginAttempt struct {
	Email     string
	User      *models.User
	Err       error
	ClientIP  string
	UserAgent string
	RequestID string
}

// UserLoginLogService 登录审计服务
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewUserLoginLogService 创建登录审计服务
func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// Record 写入登录日志，写入失败只记日志不影响登录结果
func (s *UserLoginLogService) Record(ctx context.Context, attempt LoginAttempt) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &models.UserLoginLog{
		Email:     strings.ToLower(strings.TrimSpace(attempt.Email)),
		Status:    constants.LoginLogStatusSuccess,
		ClientIP:  attempt.ClientIP,
		UserAgent: attempt.UserAgent,
		RequestID: attempt.RequestID,
	}
	if attempt.User != nil {
		entry.UserID = attempt.User.ID
	}
	if attempt.Err != nil {
		entry.Status = constants.LoginLogStatusFailed
		entry.FailReason = loginFailReason(attempt.Err)
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Warnw("user_login_log_create_failed", "email", entry.Email, "error", err)
	}
}

// ListByUser 查询用户最近的登录记录
func (s *UserLoginLogService) ListByUser(ctx context.Context, userID models.EntityID, limit int) ([]models.UserLoginLog, error) {
	id, err := strconv.ParseUint(userID.String(), 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidToken
	}
	return s.repo.ListByUser(ctx, uint(id), limit)
}

func loginFailReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return constants.LoginFailReasonInvalidEmail
	case errors.Is(err, ErrInvalidCredentials):
		return constants.LoginFailReasonInvalidCredentials
	case errors.Is(err, ErrUserDisabled):
		return constants.LoginFailReasonUserDisabled
	default:
		return constants.LoginFailReasonInternal
	}
}
