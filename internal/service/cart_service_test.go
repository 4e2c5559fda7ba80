package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type staticCatalog struct {
	products []models.Product
	err      error
	calls    int
}

func (s *staticCatalog) Load(context.Context) ([]models.Product, error) {
	s.calls++
	return s.products, s.err
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newCartServiceForTest(t *testing.T, policy string, source *staticCatalog) (*CartService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), source, nil, CartServiceOptions{
		QuantityPolicy:    policy,
		Pricer:            DefaultCartPricer(),
		ConsolidateOnView: true,
	})
	return svc, db
}

func intPtr(v int) *int { return &v }

func TestCartServiceAddItemCreatesCartWithDefaultQuantity(t *testing.T) {
	svc, _ := newCartServiceForTest(t, constants.QuantityPolicyStrict, &staticCatalog{})

	cart, err := svc.AddItem(context.Background(), AddCartItemInput{UserID: "5", ProductID: "9"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if cart.Status != constants.CartStatusActive || cart.UserID != "5" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "9" || cart.Items[0].Quantity != 1 {
		t.Fatalf("unexpected items: %+v", cart.Items)
	}
}

func TestCartServiceAddItemRequiresUserAndProduct(t *testing.T) {
	svc, db := newCartServiceForTest(t, constants.QuantityPolicyStrict, &staticCatalog{})

	_, err := svc.AddItem(context.Background(), AddCartItemInput{ProductID: "9"})
	if !errors.Is(err, ErrCartInvalid) {
		t.Fatalf("expected ErrCartInvalid, got %v", err)
	}
	_, err = svc.AddItem(context.Background(), AddCartItemInput{UserID: "5"})
	if !errors.Is(err, ErrCartInvalid) {
		t.Fatalf("expected ErrCartInvalid, got %v", err)
	}

	var count int64
	db.Model(&models.CartDocument{}).Count(&count)
	if count != 0 {
		t.Fatalf("no cart should be created, got %d", count)
	}
}

func TestCartServiceQuantityPolicy(t *testing.T) {
	strict, _ := newCartServiceForTest(t, constants.QuantityPolicyStrict, &staticCatalog{})
	if _, err := strict.AddItem(context.Background(), AddCartItemInput{UserID: "5", ProductID: "9", Quantity: intPtr(0)}); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("strict policy should reject zero quantity, got %v", err)
	}

	permissive, _ := newCartServiceForTest(t, constants.QuantityPolicyPermissive, &staticCatalog{})
	cart, err := permissive.AddItem(context.Background(), AddCartItemInput{UserID: "5", ProductID: "9", Quantity: intPtr(-2)})
	if err != nil {
		t.Fatalf("permissive policy should accept negative quantity: %v", err)
	}
	if cart.Items[0].Quantity != -2 {
		t.Fatalf("quantity should be stored as given, got %d", cart.Items[0].Quantity)
	}
}

func TestCartServiceDelete(t *testing.T) {
	svc, _ := newCartServiceForTest(t, constants.QuantityPolicyStrict, &staticCatalog{})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, AddCartItemInput{UserID: "5", ProductID: "9"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.Delete(ctx, cart.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, cart.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestCartServiceViewMergesReconcilesAndPrices(t *testing.T) {
	source := &staticCatalog{products: catalogFixture()}
	svc, db := newCartServiceForTest(t, constants.QuantityPolicyStrict, source)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "2", ProductID: "101", Quantity: intPtr(1)}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	legacy := models.CartDocument{
		ID:     "legacy",
		UserID: "2",
		Status: "ordered",
		Items:  []models.CartLineItem{{ProductID: "101", Quantity: 1}, {ProductID: "777", Quantity: 1}},
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed legacy cart failed: %v", err)
	}

	view, err := svc.View(ctx, "2")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 merged lines, got %+v", view.Items)
	}
	if view.Items[0].ProductID != "101" || view.Items[0].Quantity != 2 || view.Items[0].Missing {
		t.Fatalf("unexpected first line: %+v", view.Items[0])
	}
	if !view.Items[1].Missing {
		t.Fatalf("unknown product should be flagged missing: %+v", view.Items[1])
	}
	assertMoney(t, "subtotal", view.Summary.Subtotal, "2000.00")
	assertMoney(t, "discount", view.Summary.Discount, "200.00")
	assertMoney(t, "total", view.Summary.Total, "1804.00")
}

func TestCartServiceViewEmptyCartSkipsCatalog(t *testing.T) {
	source := &staticCatalog{err: errors.New("should not be called")}
	svc, _ := newCartServiceForTest(t, constants.QuantityPolicyStrict, source)

	view, err := svc.View(context.Background(), "8")
	if err != nil {
		t.Fatalf("empty view failed: %v", err)
	}
	if len(view.Items) != 0 || source.calls != 0 {
		t.Fatalf("empty cart should not load catalog: items=%d calls=%d", len(view.Items), source.calls)
	}
	assertMoney(t, "total", view.Summary.Total, "4.00")
}

func TestCartServiceViewCatalogFailure(t *testing.T) {
	source := &staticCatalog{err: errors.New("upstream down")}
	svc, _ := newCartServiceForTest(t, constants.QuantityPolicyStrict, source)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddCartItemInput{UserID: "2", ProductID: "101"}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := svc.View(ctx, "2"); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestCartServiceConsolidate(t *testing.T) {
	svc, db := newCartServiceForTest(t, constants.QuantityPolicyStrict, &staticCatalog{})
	ctx := context.Background()

	active, err := svc.AddItem(ctx, AddCartItemInput{UserID: "2", ProductID: "101", Quantity: intPtr(2)})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	legacy := models.CartDocument{
		ID:     "legacy",
		UserID: "2",
		Status: "ordered",
		Items:  []models.CartLineItem{{ProductID: "101", Quantity: 1}, {ProductID: "202", Quantity: 1}},
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed legacy cart failed: %v", err)
	}

	if err := svc.Consolidate(ctx, "2"); err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}
	carts, err := repository.NewCartRepository(db).ListByUser(ctx, "2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(carts) != 1 || carts[0].ID != active.ID {
		t.Fatalf("expected the active cart to survive, got %+v", carts)
	}
	merged := MergeCartLines("2", carts)
	if len(merged) != 2 || merged[0].Quantity != 3 || merged[1].Quantity != 1 {
		t.Fatalf("unexpected consolidated lines: %+v", merged)
	}

	if err := svc.Consolidate(ctx, "2"); err != nil {
		t.Fatalf("second consolidate should be a no-op: %v", err)
	}
}

// addAfterListRepo 在 ListByUser 返回后立即写入一次加购
type addAfterListRepo struct {
	repository.CartRepository
	userID    models.EntityID
	productID models.EntityID
	quantity  int
	fired     bool
}

func (r *addAfterListRepo) ListByUser(ctx context.Context, userID models.EntityID) ([]models.CartDocument, error) {
	carts, err := r.CartRepository.ListByUser(ctx, userID)
	if err == nil && !r.fired {
		r.fired = true
		if _, addErr := r.CartRepository.AddItem(ctx, r.userID, r.productID, r.quantity); addErr != nil {
			return nil, addErr
		}
	}
	return carts, err
}

func TestCartServiceConsolidateKeepsAddsAfterRead(t *testing.T) {
	db := openServiceTestDB(t)
	base := repository.NewCartRepository(db)
	ctx := context.Background()

	if _, err := base.AddItem(ctx, "2", "101", 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	legacy := models.CartDocument{
		ID:     "legacy",
		UserID: "2",
		Status: "ordered",
		Items:  []models.CartLineItem{{ProductID: "202", Quantity: 1}},
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed legacy cart failed: %v", err)
	}

	repo := &addAfterListRepo{CartRepository: base, userID: "2", productID: "303", quantity: 5}
	svc := NewCartService(repo, &staticCatalog{}, nil, CartServiceOptions{Pricer: DefaultCartPricer()})
	if err := svc.Consolidate(ctx, "2"); err != nil {
		t.Fatalf("consolidate failed: %v", err)
	}

	carts, err := base.ListByUser(ctx, "2")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(carts) != 1 {
		t.Fatalf("expected a single cart, got %+v", carts)
	}
	merged := MergeCartLines("2", carts)
	quantities := map[models.EntityID]int{}
	for _, item := range merged {
		quantities[item.ProductID] = item.Quantity
	}
	if len(merged) != 3 || quantities["101"] != 1 || quantities["202"] != 1 || quantities["303"] != 5 {
		t.Fatalf("concurrent add lost during consolidation: %+v", merged)
	}
}
