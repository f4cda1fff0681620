package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
)

// MemoryStorage holds carts in process. Carts are stored encoded so that
// callers never share line slices with the store.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[uuid.UUID][]byte)}
}

func (s *MemoryStorage) Load(_ context.Context, owner uuid.UUID) (*entity.Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[owner]
	s.mu.RUnlock()
	if !ok {
		return entity.NewCart(nil), nil
	}

	var lines []entity.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domainRepo.ErrMalformedCart, err)
	}
	return entity.NewCart(lines), nil
}

func (s *MemoryStorage) Save(ctx context.Context, owner uuid.UUID, cart *entity.Cart) error {
	if cart == nil || cart.IsEmpty() {
		return s.Clear(ctx, owner)
	}
	data, err := json.Marshal(cart.Lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	s.mu.Lock()
	s.carts[owner] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Clear(_ context.Context, owner uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, owner)
	s.mu.Unlock()
	return nil
}

// SetRaw stores data verbatim for owner.
func (s *MemoryStorage) SetRaw(owner uuid.UUID, data []byte) {
	s.mu.Lock()
	s.carts[owner] = data
	s.mu.Unlock()
}
