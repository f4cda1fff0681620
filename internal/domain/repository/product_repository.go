package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/pkg/pagination"
)

// ProductRepository is the product catalog. Lookups return nil, nil when the
// product does not exist.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// GetLowStock lists products whose quantity is at or below quantity_alert
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	CountLowStock(ctx context.Context) (int64, error)
}

// ProductFilterParams narrows List. Zero values do not filter.
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}
