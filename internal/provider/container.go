package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/flipcart-next/internal/cache"
	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/config"
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/queue"
	"github.com/flipcart-next/internal/repository"
	"github.com/flipcart-next/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Catalog     catalog.Source

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository

	UserLoginLogRepo repository.UserLoginLogRepository

	// Services
	UserAuthService *service.UserAuthService
	ProductService  *service.ProductService
	CartService     *service.CartService

	UserLoginLogService *service.UserLoginLogService

	mongoDB *mongo.Database
}

// NewContainer 使用全局数据库连接初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	if err := c.initRepositories(db); err != nil {
		return nil, err
	}

	// 2. 初始化 Services
	c.initServices()

	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) error {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)

	switch c.Config.Cart.Store {
	case constants.CartStoreMongo:
		repo, err := c.openMongoCartRepository()
		if err != nil {
			return err
		}
		c.CartRepo = repo
	default:
		c.CartRepo = repository.NewCartRepository(db)
	}
	logger.Infow("provider_cart_store_selected", "store", c.Config.Cart.Store)
	return nil
}

func (c *Container) openMongoCartRepository() (*repository.MongoCartRepository, error) {
	mongoCfg := c.Config.Mongo
	timeout := time.Duration(mongoCfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()

	db, err := repository.ConnectMongo(ctx, mongoCfg.URI, mongoCfg.Database, timeout)
	if err != nil {
		return nil, err
	}
	repo := repository.NewMongoCartRepository(db, mongoCfg.Collection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warnw("provider_mongo_ensure_indexes_failed", "error", err)
	}
	c.mongoDB = db
	return repo, nil
}

func (c *Container) initServices() {
	c.Catalog = catalog.NewSource(c.Config.Catalog, c.ProductRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.ProductService = service.NewProductService(c.Catalog)
	c.CartService = service.NewCartService(c.CartRepo, c.Catalog, c.QueueClient, service.CartServiceOptions{
		QuantityPolicy: c.Config.Cart.QuantityPolicy,
		Pricer: service.CartPricer{
			PlatformFee:           models.NewMoneyFromInt(c.Config.Cart.PlatformFee),
			ClampNegativeDiscount: c.Config.Cart.ClampNegativeDiscount,
		},
		ConsolidateOnView: c.Config.Cart.ConsolidateOnView,
	})
}

// Close 释放外部连接
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if c.mongoDB != nil {
		return c.mongoDB.Client().Disconnect(ctx)
	}
	return nil
}
