package service

import "errors"

var (
	// 购物车
	ErrCartInvalid         = errors.New("product id and user are required")
	ErrCartQuantityInvalid = errors.New("quantity must be a positive integer")
	ErrCartNotFound        = errors.New("cart not found")

	// 商品目录
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// 用户认证
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid token")
)
