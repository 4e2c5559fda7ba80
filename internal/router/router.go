package router

import (
	"fmt"
	"strings"

	"github.com/flipcart-next/internal/cache"
	"github.com/flipcart-next/internal/config"
	publichandlers "github.com/flipcart-next/internal/http/handlers/public"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
// 路径与既有前端保持一致，不加版本前缀
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fc"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", h.Healthz)

	// 购物车（用户来自请求参数）
	r.POST("/cart/add", h.AddCartItem)
	r.GET("/carts", h.ListCarts)
	r.DELETE("/cart/:id", h.DeleteCart)
	r.GET("/carts/:user/view", h.ViewCart)

	// 商品
	r.GET("/products", h.ListProducts)
	r.GET("/products/categories", h.ListCategories)

	// 鉴权
	auth := r.Group("/auth")
	{
		auth.POST("/signup", RateLimitMiddleware(cache.Client(), loginRule, KeyByIP), h.Signup)
		auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), h.Login)
	}

	// 登录用户（用户来自 JWT）
	me := r.Group("/me")
	me.Use(UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo))
	{
		me.GET("/cart", h.ViewMyCart)
		me.POST("/cart/add", h.AddMyCartItem)
		me.GET("/login-logs", h.ListMyLoginLogs)
	}

	return r
}
