package service

import (
	"context"
	"fmt"

	"github.com/flipcart-next/internal/catalog"
	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/queue"
	"github.com/flipcart-next/internal/repository"
)

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    models.EntityID
	ProductID models.EntityID
	Quantity  *int // 为空时按 1 处理
}

// CartView 购物车视图（合并、关联目录并计价后的结果）
type CartView struct {
	UserID  models.EntityID    `json:"userId"`
	Items   []EnrichedLineItem `json:"items"`
	Summary PriceSummary       `json:"summary"`
}

// CartServiceOptions 购物车服务可选项
type CartServiceOptions struct {
	QuantityPolicy    string
	Pricer            CartPricer
	ConsolidateOnView bool
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	catalog     catalog.Source
	queueClient *queue.Client
	options     CartServiceOptions
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, source catalog.Source, queueClient *queue.Client, options CartServiceOptions) *CartService {
	if options.QuantityPolicy == "" {
		options.QuantityPolicy = constants.QuantityPolicyStrict
	}
	return &CartService{
		cartRepo:    cartRepo,
		catalog:     source,
		queueClient: queueClient,
		options:     options,
	}
}

// AddItem 加入购物车：不存在 active 购物车时创建，存在同商品时累加，否则追加
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (*models.CartDocument, error) {
	if input.UserID.IsZero() || input.ProductID.IsZero() {
		return nil, ErrCartInvalid
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 && s.options.QuantityPolicy != constants.QuantityPolicyPermissive {
		return nil, ErrCartQuantityInvalid
	}

	cart, err := s.cartRepo.AddItem(ctx, input.UserID, input.ProductID, quantity)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return cart, nil
}

// ListAll 获取全部购物车文档
func (s *CartService) ListAll(ctx context.Context) ([]models.CartDocument, error) {
	carts, err := s.cartRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	if carts == nil {
		carts = []models.CartDocument{}
	}
	return carts, nil
}

// Delete 按文档 ID 删除购物车
func (s *CartService) Delete(ctx context.Context, id models.EntityID) error {
	if id.IsZero() {
		return ErrCartNotFound
	}
	affected, err := s.cartRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

// View 生成用户购物车视图
// 用户存在多个购物车文档时投递合并任务，本次请求仍按合并结果返回
func (s *CartService) View(ctx context.Context, userID models.EntityID) (*CartView, error) {
	if userID.IsZero() {
		return nil, ErrCartInvalid
	}
	carts, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user carts: %w", err)
	}
	merged := MergeCartLines(userID, carts)

	products := []models.Product{}
	if len(merged) > 0 {
		products, err = s.catalog.Load(ctx)
		if err != nil {
			logger.Warnw("cart_view_catalog_load_failed", "user_id", userID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
	}

	items := ReconcileCartLines(merged, products)
	if len(carts) > 1 && s.options.ConsolidateOnView {
		s.scheduleConsolidation(userID)
	}
	return &CartView{
		UserID:  userID,
		Items:   items,
		Summary: s.options.Pricer.Price(items),
	}, nil
}

func (s *CartService) scheduleConsolidation(userID models.EntityID) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueCartConsolidate(queue.CartConsolidatePayload{UserID: userID.String()}); err != nil {
		logger.Warnw("cart_consolidate_enqueue_failed", "user_id", userID, "error", err)
	}
}

// Consolidate 将用户的多个购物车文档合并为一个 active 文档
// 保留 active 文档（没有则保留最早的一个），其余文档的购物车项累加进保留文档后删除；
// 不超过一个文档时不做任何事
func (s *CartService) Consolidate(ctx context.Context, userID models.EntityID) error {
	if userID.IsZero() {
		return ErrCartInvalid
	}
	carts, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list user carts: %w", err)
	}
	if len(carts) <= 1 {
		return nil
	}

	keep := 0
	for i := range carts {
		if carts[i].IsActive() {
			keep = i
			break
		}
	}
	dropIDs := make([]models.EntityID, 0, len(carts)-1)
	for i := range carts {
		if i != keep {
			dropIDs = append(dropIDs, carts[i].ID)
		}
	}

	moved, err := s.cartRepo.Consolidate(ctx, carts[keep].ID, dropIDs)
	if err != nil {
		return fmt.Errorf("consolidate carts: %w", err)
	}
	logger.Infow("cart_consolidated",
		"user_id", userID,
		"kept_cart_id", carts[keep].ID,
		"dropped", len(dropIDs),
		"moved_lines", moved,
	)
	return nil
}
