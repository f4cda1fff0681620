package repository

import (
	"context"
	"time"

	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock movement repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

// ApplyAdjustment updates the product quantity only when the result stays
// non-negative: UPDATE products SET quantity = quantity + d WHERE id = ? AND quantity + d >= 0
func (r *stockRepository) ApplyAdjustment(ctx context.Context, adjustment *entity.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		delta := adjustment.Delta()
		result := tx.Model(&entity.Product{}).
			Where("id = ? AND quantity + ? >= 0", adjustment.ProductID, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrInsufficientStock
		}
		return tx.Omit("Product").Create(adjustment).Error
	})
}

func (r *stockRepository) RecordTransfer(ctx context.Context, transfer *entity.StockTransfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entity.Product
		if err := tx.Select("id", "quantity").First(&product, "id = ?", transfer.ProductID).Error; err != nil {
			return err
		}
		if product.Quantity < transfer.Quantity {
			return domainRepo.ErrInsufficientStock
		}
		return tx.Omit("Product").Create(transfer).Error
	})
}

func (r *stockRepository) ListAdjustments(ctx context.Context, params *domainRepo.StockFilterParams) ([]entity.StockAdjustment, int64, error) {
	var items []entity.StockAdjustment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockAdjustment{}).
		Scopes(DateRangeScope("adjusted_at", params.StartDate, params.EndDate))
	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(PaginateScope(params.Pagination)).
		Preload("Product").
		Order("adjusted_at DESC").
		Find(&items).Error
	return items, total, err
}

func (r *stockRepository) ListTransfers(ctx context.Context, params *domainRepo.StockFilterParams) ([]entity.StockTransfer, int64, error) {
	var items []entity.StockTransfer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockTransfer{}).
		Scopes(DateRangeScope("transferred_at", params.StartDate, params.EndDate))
	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(PaginateScope(params.Pagination)).
		Preload("Product").
		Order("transferred_at DESC").
		Find(&items).Error
	return items, total, err
}

func (r *stockRepository) AdjustmentsBetween(ctx context.Context, from, to *time.Time) ([]entity.StockAdjustment, error) {
	var items []entity.StockAdjustment
	err := r.db.WithContext(ctx).
		Scopes(DateRangeScope("adjusted_at", from, to)).
		Preload("Product.Category").
		Order("adjusted_at ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepository) TransfersBetween(ctx context.Context, from, to *time.Time) ([]entity.StockTransfer, error) {
	var items []entity.StockTransfer
	err := r.db.WithContext(ctx).
		Scopes(DateRangeScope("transferred_at", from, to)).
		Preload("Product.Category").
		Order("transferred_at ASC").
		Find(&items).Error
	return items, err
}
