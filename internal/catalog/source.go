package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flipcart-next/internal/config"
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/repository"

	"github.com/sony/gobreaker/v2"
)

// Source 商品目录来源
type Source interface {
	Load(ctx context.Context) ([]models.Product, error)
}

// DatabaseSource 从商品表读取目录
type DatabaseSource struct {
	repo repository.ProductRepository
}

// NewDatabaseSource 创建数据库目录来源
func NewDatabaseSource(repo repository.ProductRepository) *DatabaseSource {
	return &DatabaseSource{repo: repo}
}

// Load 读取全部商品
func (s *DatabaseSource) Load(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products from database: %w", err)
	}
	return products, nil
}

// UpstreamStatusError 上游返回非 2xx
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("catalog upstream returned status %d", e.StatusCode)
}

// HTTPSource 从上游 /products 接口拉取目录，带熔断
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]models.Product]
}

// NewHTTPSource 创建上游目录来源
func NewHTTPSource(cfg config.CatalogConfig, client *http.Client) *HTTPSource {
	if client == nil {
		timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	threshold := cfg.Breaker.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        "catalog-upstream",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    time.Duration(cfg.Breaker.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("catalog_breaker_state_changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &HTTPSource{
		url:     cfg.UpstreamURL,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]models.Product](settings),
	}
}

// Load 拉取并展开上游目录
func (s *HTTPSource) Load(ctx context.Context) ([]models.Product, error) {
	return s.breaker.Execute(func() ([]models.Product, error) {
		return s.fetch(ctx)
	})
}

func (s *HTTPSource) fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request catalog upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamStatusError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxCatalogResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	return Flatten(body)
}

// NewSource 按配置组装目录来源，Redis 启用时外层包一层缓存
func NewSource(cfg config.CatalogConfig, repo repository.ProductRepository) Source {
	var source Source
	switch cfg.Source {
	case constants.CatalogSourceHTTP:
		source = NewHTTPSource(cfg, nil)
	default:
		source = NewDatabaseSource(repo)
	}
	return NewCachedSource(source, time.Duration(cfg.CacheTTLSeconds)*time.Second)
}
