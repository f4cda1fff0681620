package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/pkg/pagination"
)

// SaleRepository is the sales ledger. Sales are append-only.
type SaleRepository interface {
	// Commit stores the sale with its items and draws down product stock in
	// one transaction. It assigns the sale ID.
	Commit(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// Between returns sales with items sold within [from, to]. Nil bounds are open.
	Between(ctx context.Context, from, to *time.Time) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentMethod enum.PaymentMethod
	CashierID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
