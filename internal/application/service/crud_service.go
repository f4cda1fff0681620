package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"github.com/sangkips/retailhub-api/pkg/utils"
)

// CRUDService serves list/get/create/update/delete for one management table
type CRUDService[T repository.Resource] struct {
	repo repository.CRUDRepository[T]
	name string
}

// NewCRUDService creates a service for repo. name is used in error messages,
// e.g. "Supplier".
func NewCRUDService[T repository.Resource](repo repository.CRUDRepository[T], name string) *CRUDService[T] {
	return &CRUDService[T]{repo: repo, name: name}
}

// Name returns the resource display name
func (s *CRUDService[T]) Name() string {
	return s.name
}

func normalize[T any](item *T) {
	if n, ok := any(item).(interface{ Normalize() }); ok {
		n.Normalize()
	}
}

func validate[T repository.Resource](item *T) error {
	if errs := (*item).Validate(); len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// List returns one page of items
func (s *CRUDService[T]) List(ctx context.Context, params *repository.ListParams) (*pagination.PaginatedResult[T], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// Get retrieves an item by ID
func (s *CRUDService[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(s.name)
	}
	return item, nil
}

// Create validates and stores a new item
func (s *CRUDService[T]) Create(ctx context.Context, item *T) (*T, error) {
	normalize(item)
	if err := validate(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces every editable field of the item with changes
func (s *CRUDService[T]) Update(ctx context.Context, id uuid.UUID, changes *T) (*T, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalize(changes)
	if err := validate(changes); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an item
func (s *CRUDService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Dataset renders every item matching params as an export table named
// after the table. Columns are the entity's export columns, title-cased.
func (s *CRUDService[T]) Dataset(ctx context.Context, params *repository.ListParams) (export.Dataset, error) {
	items, err := s.repo.All(ctx, params)
	if err != nil {
		return export.Dataset{}, err
	}

	var zero T
	keys := zero.ExportColumns()
	columns := make([]string, len(keys))
	for i, k := range keys {
		columns[i] = utils.Titleize(k)
	}

	rows := make([]export.Row, 0, len(items))
	for i := range items {
		fields, err := toFields(&items[i])
		if err != nil {
			return export.Dataset{}, err
		}
		row := make(export.Row, len(keys))
		for j, k := range keys {
			row[columns[j]] = displayValue(fields[k])
		}
		rows = append(rows, row)
	}

	return export.Dataset{Name: utils.Titleize(zero.TableName()), Columns: columns, Rows: rows}, nil
}

// toFields flattens item through its JSON encoding
func toFields(item any) (map[string]any, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
