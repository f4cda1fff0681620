package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const settleClearAttempts = 2

// CartService keeps one persisted cart per owner. Mutations for the same
// owner are serialized; reads are de-duplicated.
type CartService struct {
	storage     repository.CartStorage
	productRepo repository.ProductRepository
	log         *zap.Logger

	locks sync.Map // uuid.UUID -> *sync.Mutex
	loads singleflight.Group
}

// NewCartService creates a new cart service
func NewCartService(
	storage repository.CartStorage,
	productRepo repository.ProductRepository,
	log *zap.Logger,
) *CartService {
	return &CartService{
		storage:     storage,
		productRepo: productRepo,
		log:         log,
	}
}

func (s *CartService) lock(owner uuid.UUID) func() {
	mu, _ := s.locks.LoadOrStore(owner, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// load reads the stored cart. Malformed data is logged and read as empty.
func (s *CartService) load(ctx context.Context, owner uuid.UUID) (*entity.Cart, error) {
	cart, err := s.storage.Load(ctx, owner)
	if errors.Is(err, repository.ErrMalformedCart) {
		s.log.Warn("discarding malformed cart", zap.String("owner", owner.String()), zap.Error(err))
		return entity.NewCart(nil), nil
	}
	if err != nil {
		s.log.Error("cart load failed", zap.String("owner", owner.String()), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

// GetCart returns the owner's cart
func (s *CartService) GetCart(ctx context.Context, owner uuid.UUID) (*entity.Cart, error) {
	// the flight outlives whichever caller started it
	v, err, _ := s.loads.Do(owner.String(), func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), owner)
	})
	if err != nil {
		return nil, err
	}
	// callers sharing a flight must not share lines
	return entity.NewCart(v.(*entity.Cart).Lines), nil
}

func (s *CartService) mutate(ctx context.Context, owner uuid.UUID, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	unlock := s.lock(owner)
	defer unlock()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.storage.Save(ctx, owner, cart); err != nil {
		s.log.Error("cart save failed", zap.String("owner", owner.String()), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

// AddToCart adds one unit of the product, creating the line when needed.
// Name, price and category are taken from the catalog.
func (s *CartService) AddToCart(ctx context.Context, owner, productID uuid.UUID) (*entity.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	return s.mutate(ctx, owner, func(cart *entity.Cart) error {
		cart.Add(product.CartProduct())
		return nil
	})
}

// IncrementLine adds one unit to an existing line
func (s *CartService) IncrementLine(ctx context.Context, owner, productID uuid.UUID) (*entity.Cart, error) {
	return s.mutate(ctx, owner, func(cart *entity.Cart) error {
		if !cart.Increment(productID) {
			return apperror.NewNotFoundError("Cart item")
		}
		return nil
	})
}

// DecrementLine removes one unit; the line is dropped at zero
func (s *CartService) DecrementLine(ctx context.Context, owner, productID uuid.UUID) (*entity.Cart, error) {
	return s.mutate(ctx, owner, func(cart *entity.Cart) error {
		if !cart.Decrement(productID) {
			return apperror.NewNotFoundError("Cart item")
		}
		return nil
	})
}

// RemoveLine drops a line regardless of quantity
func (s *CartService) RemoveLine(ctx context.Context, owner, productID uuid.UUID) (*entity.Cart, error) {
	return s.mutate(ctx, owner, func(cart *entity.Cart) error {
		if !cart.Remove(productID) {
			return apperror.NewNotFoundError("Cart item")
		}
		return nil
	})
}

// Clear empties the cart and deletes the stored copy
func (s *CartService) Clear(ctx context.Context, owner uuid.UUID) error {
	unlock := s.lock(owner)
	defer unlock()

	if err := s.storage.Clear(ctx, owner); err != nil {
		s.log.Error("cart clear failed", zap.String("owner", owner.String()), zap.Error(err))
		return err
	}
	return nil
}

// Settle runs fn on the owner's cart while holding the owner's lock and
// clears the cart when fn succeeds. The cart is left untouched otherwise.
// cleared is false when fn succeeded but the stored cart survived every
// clear attempt.
func (s *CartService) Settle(ctx context.Context, owner uuid.UUID, fn func(cart *entity.Cart) error) (cleared bool, err error) {
	unlock := s.lock(owner)
	defer unlock()

	cart, err := s.load(ctx, owner)
	if err != nil {
		return false, err
	}
	if err := fn(cart); err != nil {
		return false, err
	}

	// fn has committed; a cancelled request must not skip the clear
	ctx = context.WithoutCancel(ctx)
	for attempt := 1; attempt <= settleClearAttempts; attempt++ {
		err := s.storage.Clear(ctx, owner)
		if err == nil {
			return true, nil
		}
		s.log.Warn("cart clear after checkout failed",
			zap.String("owner", owner.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	s.log.Error("cart left behind after checkout", zap.String("owner", owner.String()))
	return false, nil
}
