package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/pagination"
)

// Resource is implemented by every management entity served through the
// generic CRUD stack.
type Resource interface {
	TableName() string
	// SearchColumns are matched case-insensitively by the search term.
	SearchColumns() []string
	// FilterColumns accept exact-match query filters.
	FilterColumns() []string
	// ExportColumns are the JSON fields written to exports, in order.
	ExportColumns() []string
	Validate() []apperror.FieldError
}

// ListParams contains filtering parameters for generic list queries
type ListParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Filters    map[string]string
	SortBy     string
	SortOrder  string
}

// CRUDRepository is the persistence contract shared by all management tables
type CRUDRepository[T Resource] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	// Update overwrites every column of existing with the values in changes.
	Update(ctx context.Context, existing *T, changes *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ListParams) ([]T, int64, error)
	// All returns every row matching params without pagination.
	All(ctx context.Context, params *ListParams) ([]T, error)
}
