package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/config"
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/provider"
	"github.com/flipcart-next/internal/repository"
	"github.com/flipcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestSetupRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.L = logger.New("debug", logger.Options{})
	t.Cleanup(func() { logger.L = nil })

	db := openRouterTestDB(t)
	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "router-secret", ExpireHours: 1},
		Security: config.SecurityConfig{PasswordMinLength: 6},
	}
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	source := catalog.NewDatabaseSource(productRepo)
	c := &provider.Container{
		Config:          cfg,
		Catalog:         source,
		UserRepo:        userRepo,
		ProductRepo:     productRepo,
		CartRepo:        cartRepo,
		UserAuthService: service.NewUserAuthService(cfg, userRepo),
		ProductService:  service.NewProductService(source),
		CartService: service.NewCartService(cartRepo, source, nil, service.CartServiceOptions{
			QuantityPolicy: constants.QuantityPolicyStrict,
			Pricer:         service.DefaultCartPricer(),
		}),

		UserLoginLogService: service.NewUserLoginLogService(repository.NewUserLoginLogRepository(db)),
	}
	r := SetupRouter(cfg, c)

	want := map[string]bool{
		"GET /healthz":             false,
		"POST /cart/add":           false,
		"GET /carts":               false,
		"DELETE /cart/:id":         false,
		"GET /carts/:user/view":    false,
		"GET /products":            false,
		"GET /products/categories": false,
		"POST /auth/signup":        false,
		"POST /auth/login":         false,
		"GET /me/cart":             false,
		"POST /me/cart/add":        false,
		"GET /me/login-logs":       false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route %s not registered", key)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("healthz through full stack: %d request_id=%q", w.Code, w.Header().Get(requestIDHeader))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me/cart", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("/me/cart without token should be 401, got %d", w.Code)
	}
}
