package main

import (
	"context"
	"flag"
	"os"

	"github.com/flipcart-next/internal/cache"
	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/config"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/repository"
	"github.com/flipcart-next/internal/service"
)

func main() {
	var catalogFile, demoEmail, demoPassword string
	flag.StringVar(&catalogFile, "catalog", "", "商品目录 JSON 文件（扁平数组或嵌套 products 文档），为空时写入内置样例")
	flag.StringVar(&demoEmail, "demo-email", "demo@flipcart.local", "演示用户邮箱，为空时跳过")
	flag.StringVar(&demoPassword, "demo-password", "flipcart123", "演示用户密码")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := sampleProducts()
	if catalogFile != "" {
		raw, err := os.ReadFile(catalogFile)
		if err != nil {
			stdLog.Fatalf("Failed to read catalog file: %v", err)
		}
		products, err = catalog.Flatten(raw)
		if err != nil {
			stdLog.Fatalf("Failed to parse catalog file: %v", err)
		}
	}

	ctx := context.Background()
	productRepo := repository.NewProductRepository(models.DB)
	if err := productRepo.Upsert(ctx, products); err != nil {
		stdLog.Fatalf("Failed to seed products: %v", err)
	}
	logger.Infow("seed_products_ok", "count", len(products))
	invalidateCatalogCache(ctx, cfg, productRepo)

	if demoEmail == "" {
		return
	}
	auth := service.NewUserAuthService(cfg, repository.NewUserRepository(models.DB))
	user, _, err := auth.Signup(ctx, demoEmail, demoPassword, "Demo")
	switch {
	case err == nil:
		logger.Infow("seed_demo_user_ok", "email", user.Email, "user_id", user.OwnerID())
	default:
		logger.Warnw("seed_demo_user_skipped", "email", demoEmail, "error", err)
	}
}

// invalidateCatalogCache 清除运行中服务的目录缓存，新商品无需等待 TTL
func invalidateCatalogCache(ctx context.Context, cfg *config.Config, productRepo repository.ProductRepository) {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("seed_redis_init_failed", "error", err)
		return
	}
	defer cache.Reset()
	cached, ok := catalog.NewSource(cfg.Catalog, productRepo).(*catalog.CachedSource)
	if !ok {
		return
	}
	if err := cached.Invalidate(ctx); err != nil {
		logger.Warnw("seed_catalog_cache_invalidate_failed", "error", err)
		return
	}
	logger.Infow("seed_catalog_cache_invalidated", "enabled", cache.Enabled())
}

func sampleProducts() []models.Product {
	money := func(v int64) models.Money { return models.NewMoneyFromInt(v) }
	return []models.Product{
		{ID: "1", Title: "Galaxy Note 10", Brand: "Samsung", Category: "mobiles", Price: money(62999), OriginalPrice: models.MoneyPtr(money(79999)), Rating: 4.5, Stock: 30},
		{ID: "2", Title: "iPhone 13", Brand: "Apple", Category: "mobiles", Price: money(69900), OriginalPrice: models.MoneyPtr(money(79900)), Rating: 4.7, Stock: 12},
		{ID: "3", Title: "Redmi Note 12", Brand: "Xiaomi", Category: "mobiles", Price: money(14999), Rating: 4.2, Stock: 80},
		{ID: "4", Title: "Noise Cancelling Headphones", Brand: "Sony", Category: "electronics", Price: money(24990), OriginalPrice: models.MoneyPtr(money(29990)), Rating: 4.6, Stock: 25},
		{ID: "5", Title: "Smart LED TV 43\"", Brand: "LG", Category: "appliances", Price: money(31990), OriginalPrice: models.MoneyPtr(money(39990)), Rating: 4.3, Stock: 8},
		{ID: "6", Title: "Cotton T-Shirt", Brand: "Roadster", Category: "fashion", Price: money(399), OriginalPrice: models.MoneyPtr(money(999)), Rating: 4.0, Stock: 200},
		{ID: "7", Title: "Running Shoes", Brand: "Puma", Category: "fashion", Price: money(2499), OriginalPrice: models.MoneyPtr(money(4999)), Rating: 4.1, Stock: 60},
		{ID: "8", Title: "USB-C Cable", Brand: "Anker", Category: "electronics", Price: money(799), Rating: 4.4, Stock: 150},
	}
}
