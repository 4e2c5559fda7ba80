package public

import "github.com/flipcart-next/internal/provider"

// Handler 前台接口处理器入口（购物车、商品、用户鉴权）
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
