package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// PaymentBreakdownResult aggregates sales by payment method
type PaymentBreakdownResult struct {
	PaymentMethod string
	SaleCount     int
	Total         decimal.Decimal
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date      time.Time
	SaleCount int
	Revenue   decimal.Decimal
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// TopProducts returns the best selling products by revenue
	TopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// PaymentBreakdown returns totals per payment method since from
	PaymentBreakdown(ctx context.Context, from time.Time) ([]PaymentBreakdownResult, error)

	// DailySales returns one entry per day for the last N days
	DailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// Revenue returns the total sales value and sale count since from
	Revenue(ctx context.Context, from time.Time) (decimal.Decimal, int64, error)
}
