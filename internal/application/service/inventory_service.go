package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"go.uber.org/zap"
)

// InventoryService records stock adjustments and transfers
type InventoryService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
) *InventoryService {
	return &InventoryService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		log:         log,
		now:         time.Now,
	}
}

// AdjustStockInput represents a manual quantity change
type AdjustStockInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Type      enum.AdjustmentType
	Quantity  int
	Reason    string
}

// AdjustStock applies the change and stores the adjustment in one
// transaction. Nothing changes when the product would go below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.StockAdjustment, error) {
	var errs []apperror.FieldError
	if input.ProductID == uuid.Nil {
		errs = append(errs, apperror.Required("product_id"))
	}
	if !input.Type.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: "type must be add or subtract"})
	}
	if input.Quantity < 1 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	adjustment := &entity.StockAdjustment{
		ProductID:  input.ProductID,
		UserID:     input.UserID,
		Type:       input.Type,
		Quantity:   input.Quantity,
		Reason:     strings.TrimSpace(input.Reason),
		Status:     "approved",
		AdjustedAt: s.now().UTC(),
	}
	if err := s.stockRepo.ApplyAdjustment(ctx, adjustment); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, insufficientStock(product)
		}
		return nil, err
	}

	product.Quantity += adjustment.Delta()
	adjustment.Product = product

	s.log.Info("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.Int("delta", adjustment.Delta()),
		zap.String("reason", adjustment.Reason),
	)
	return adjustment, nil
}

// TransferStockInput represents moving units between locations
type TransferStockInput struct {
	ProductID    uuid.UUID
	UserID       uuid.UUID
	FromLocation string
	ToLocation   string
	Quantity     int
}

// TransferStock records a transfer of units the product has on hand
func (s *InventoryService) TransferStock(ctx context.Context, input *TransferStockInput) (*entity.StockTransfer, error) {
	from := strings.TrimSpace(input.FromLocation)
	to := strings.TrimSpace(input.ToLocation)

	var errs []apperror.FieldError
	if input.ProductID == uuid.Nil {
		errs = append(errs, apperror.Required("product_id"))
	}
	if from == "" {
		errs = append(errs, apperror.Required("from_location"))
	}
	if to == "" {
		errs = append(errs, apperror.Required("to_location"))
	}
	if from != "" && strings.EqualFold(from, to) {
		errs = append(errs, apperror.FieldError{Field: "to_location", Message: "to_location must differ from from_location"})
	}
	if input.Quantity < 1 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	transfer := &entity.StockTransfer{
		ProductID:     input.ProductID,
		UserID:        input.UserID,
		FromLocation:  from,
		ToLocation:    to,
		Quantity:      input.Quantity,
		Status:        "completed",
		TransferredAt: s.now().UTC(),
	}
	if err := s.stockRepo.RecordTransfer(ctx, transfer); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, insufficientStock(product)
		}
		return nil, err
	}
	transfer.Product = product
	return transfer, nil
}

// ListAdjustments lists stock adjustments
func (s *InventoryService) ListAdjustments(ctx context.Context, params *repository.StockFilterParams) (*pagination.PaginatedResult[entity.StockAdjustment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.stockRepo.ListAdjustments(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListTransfers lists stock transfers
func (s *InventoryService) ListTransfers(ctx context.Context, params *repository.StockFilterParams) (*pagination.PaginatedResult[entity.StockTransfer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.stockRepo.ListTransfers(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

func insufficientStock(product *entity.Product) error {
	return apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock: %s has %d units", product.Name, product.Quantity))
}
