package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/cartstore"
	"github.com/sangkips/retailhub-api/internal/infrastructure/events"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// fakeLedger records commits instead of writing them
type fakeLedger struct {
	mu      sync.Mutex
	commits []*entity.Sale
	err     error
}

func (l *fakeLedger) Commit(_ context.Context, sale *entity.Sale) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	sale.ID = uuid.New()
	l.commits = append(l.commits, sale)
	return nil
}

func (l *fakeLedger) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.commits)
}

func (l *fakeLedger) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.commits {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (l *fakeLedger) GetByInvoiceNo(context.Context, string) (*entity.Sale, error) {
	return nil, nil
}
func (l *fakeLedger) List(context.Context, *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}
func (l *fakeLedger) Between(context.Context, *time.Time, *time.Time) ([]entity.Sale, error) {
	return nil, nil
}

// fakeCatalog serves products from a map
type fakeCatalog struct {
	repository.ProductRepository
	products map[uuid.UUID]*entity.Product
}

func newFakeCatalog(products ...*entity.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return c.products[id], nil
}

func product(name, price string) *entity.Product {
	return &entity.Product{ID: uuid.New(), Name: name, SellingPrice: decimal.RequireFromString(price)}
}

type checkoutFixture struct {
	carts     *CartService
	checkout  *CheckoutService
	ledger    *fakeLedger
	storage   *cartstore.MemoryStorage
	publisher *events.MemoryPublisher
	catalog   *fakeCatalog
}

func newCheckoutFixture(products ...*entity.Product) *checkoutFixture {
	f := &checkoutFixture{
		ledger:    &fakeLedger{},
		storage:   cartstore.NewMemoryStorage(),
		publisher: events.NewMemoryPublisher(),
		catalog:   newFakeCatalog(products...),
	}
	f.carts = NewCartService(f.storage, f.catalog, zap.NewNop())
	f.checkout = NewCheckoutService(f.carts, f.ledger, f.publisher, metrics.New("test"), zap.NewNop(), 0.08)
	return f
}

// flakyStorage honours context cancellation on Load and fails the first
// clearFailures calls to Clear.
type flakyStorage struct {
	*cartstore.MemoryStorage

	mu            sync.Mutex
	clearFailures int
	clears        int
}

func (s *flakyStorage) Load(ctx context.Context, owner uuid.UUID) (*entity.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.MemoryStorage.Load(ctx, owner)
}

func (s *flakyStorage) Clear(ctx context.Context, owner uuid.UUID) error {
	s.mu.Lock()
	s.clears++
	fail := s.clears <= s.clearFailures
	s.mu.Unlock()
	if fail {
		return errors.New("redis: connection reset")
	}
	return s.MemoryStorage.Clear(ctx, owner)
}

// openBreakerPublisher rejects every event the way a tripped breaker does
type openBreakerPublisher struct{}

func (openBreakerPublisher) Publish(context.Context, string, string, any) error {
	return gobreaker.ErrOpenState
}
func (openBreakerPublisher) State() string { return "open" }
func (openBreakerPublisher) Close() error  { return nil }
