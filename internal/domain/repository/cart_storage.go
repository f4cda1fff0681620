package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
)

// ErrMalformedCart is returned by Load when the stored cart cannot be decoded.
var ErrMalformedCart = errors.New("malformed cart data")

// CartStorage persists one cart per owner. Load of a missing cart returns an
// empty cart.
type CartStorage interface {
	Load(ctx context.Context, owner uuid.UUID) (*entity.Cart, error)
	Save(ctx context.Context, owner uuid.UUID, cart *entity.Cart) error
	Clear(ctx context.Context, owner uuid.UUID) error
}
