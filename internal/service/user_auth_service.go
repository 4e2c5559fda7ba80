package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/flipcart-next/internal/config"
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultUserJWTExpireHours = 168

// UserAuthService 用户认证服务
type UserAuthService struct {
	jwtCfg            config.JWTConfig
	passwordMinLength int
	userRepo          repository.UserRepository
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		jwtCfg:            cfg.JWT,
		passwordMinLength: cfg.Security.PasswordMinLength,
		userRepo:          userRepo,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// OwnerID 购物车所属用户标识
func (c *UserJWTClaims) OwnerID() models.EntityID {
	user := models.User{ID: c.UserID}
	return user.OwnerID()
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	hours := s.jwtCfg.ExpireHours
	if hours <= 0 {
		hours = defaultUserJWTExpireHours
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Signup 注册并签发 token
func (s *UserAuthService) Signup(ctx context.Context, email, password, displayName string) (*models.User, string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, "", err
	}

	exist, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if exist != nil {
		return nil, "", ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = nicknameFromEmail(normalized)
	}
	user := &models.User{
		Email:        normalized,
		PasswordHash: string(hashed),
		DisplayName:  name,
		Status:       constants.UserStatusActive,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	token, _, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 校验邮箱密码并签发 token
func (s *UserAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", ErrUserDisabled
	}

	token, _, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserAuthService) validatePassword(password string) error {
	if len([]rune(password)) < s.passwordMinLength {
		return ErrPasswordTooShort
	}
	if strings.TrimSpace(password) == "" {
		return ErrPasswordTooShort
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func nicknameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
