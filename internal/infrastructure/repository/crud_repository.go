package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type crudRepository[T domainRepo.Resource] struct {
	db *gorm.DB
}

// NewCRUDRepository creates a gorm backed repository for any management entity
func NewCRUDRepository[T domainRepo.Resource](db *gorm.DB) domainRepo.CRUDRepository[T] {
	return &crudRepository[T]{db: db}
}

func (r *crudRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *crudRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *crudRepository[T]) Update(ctx context.Context, existing *T, changes *T) error {
	return r.db.WithContext(ctx).Model(existing).
		Select("*").
		Omit("id", "created_at", "deleted_at", clause.Associations).
		Updates(changes).Error
}

func (r *crudRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

func (r *crudRepository[T]) filtered(ctx context.Context, params *domainRepo.ListParams) *gorm.DB {
	var zero T
	query := r.db.WithContext(ctx).Model(new(T))
	if params == nil {
		return query
	}

	query = query.Scopes(SearchScope(params.Search, zero.SearchColumns()...))
	for _, col := range zero.FilterColumns() {
		value, ok := params.Filters[col]
		if !ok || value == "" || value == "all" {
			continue
		}
		query = query.Where(col+" = ?", value)
	}
	return query
}

func (r *crudRepository[T]) List(ctx context.Context, params *domainRepo.ListParams) ([]T, int64, error) {
	if params == nil {
		params = &domainRepo.ListParams{}
	}
	var zero T
	var items []T
	var total int64

	query := r.filtered(ctx, params)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortable := append(zero.SearchColumns(), zero.FilterColumns()...)
	err := query.
		Scopes(SortScope(params.SortBy, params.SortOrder, sortable...), PaginateScope(params.Pagination)).
		Find(&items).Error
	return items, total, err
}

func (r *crudRepository[T]) All(ctx context.Context, params *domainRepo.ListParams) ([]T, error) {
	var items []T
	var sortBy, sortOrder string
	if params != nil {
		sortBy, sortOrder = params.SortBy, params.SortOrder
	}
	var zero T
	err := r.filtered(ctx, params).
		Scopes(SortScope(sortBy, sortOrder, zero.SearchColumns()...)).
		Find(&items).Error
	return items, err
}
