package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/pkg/pagination"
)

// ErrInsufficientStock is returned when an operation would take a product
// quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockRepository records inventory movements
type StockRepository interface {
	// ApplyAdjustment changes the product quantity and stores the adjustment
	// atomically.
	ApplyAdjustment(ctx context.Context, adjustment *entity.StockAdjustment) error
	// RecordTransfer stores a transfer after checking the product holds enough units.
	RecordTransfer(ctx context.Context, transfer *entity.StockTransfer) error
	ListAdjustments(ctx context.Context, params *StockFilterParams) ([]entity.StockAdjustment, int64, error)
	ListTransfers(ctx context.Context, params *StockFilterParams) ([]entity.StockTransfer, int64, error)
	AdjustmentsBetween(ctx context.Context, from, to *time.Time) ([]entity.StockAdjustment, error)
	TransfersBetween(ctx context.Context, from, to *time.Time) ([]entity.StockTransfer, error)
}

// StockFilterParams contains filtering parameters for stock movement queries
type StockFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
