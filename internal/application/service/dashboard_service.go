package service

import (
	"context"
	"time"

	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDashboardTop  = 5
	defaultDashboardDays = 7
	maxDashboardTop      = 20
	maxDashboardDays     = 90
)

// DashboardQuery sizes the chart series. Zero values take the defaults and
// oversized values are clamped.
type DashboardQuery struct {
	Days int
	Top  int
}

func (q DashboardQuery) normalize() DashboardQuery {
	q.Days = clamp(q.Days, defaultDashboardDays, maxDashboardDays)
	q.Top = clamp(q.Top, defaultDashboardTop, maxDashboardTop)
	return q
}

func clamp(v, fallback, limit int) int {
	if v <= 0 {
		return fallback
	}
	if v > limit {
		return limit
	}
	return v
}

// DashboardService aggregates the ledger for the back-office home screen.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

func NewDashboardService(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

type DashboardStats struct {
	TodayRevenue     decimal.Decimal     `json:"today_revenue"`
	TodaySales       int64               `json:"today_sales"`
	MonthlyRevenue   decimal.Decimal     `json:"monthly_revenue"`
	MonthlySales     int64               `json:"monthly_sales"`
	AverageSale      decimal.Decimal     `json:"average_sale"`
	LowStockCount    int64               `json:"low_stock_count"`
	DailySales       []DailySalesPoint   `json:"daily_sales"`
	TopProducts      []TopProductPoint   `json:"top_products"`
	PaymentBreakdown []PaymentSlicePoint `json:"payment_breakdown"`
}

type DailySalesPoint struct {
	Date    string          `json:"date"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductPoint is one row of the best sellers table
type TopProductPoint struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// PaymentSlicePoint is one slice of the payment method chart
type PaymentSlicePoint struct {
	Method string          `json:"method"`
	Label  string          `json:"label"`
	Sales  int             `json:"sales"`
	Total  decimal.Decimal `json:"total"`
}

// GetStats gathers today's and this month's takings, low stock, the daily
// revenue series, best sellers and the payment mix. Queries run concurrently.
func (s *DashboardService) GetStats(ctx context.Context, q DashboardQuery) (*DashboardStats, error) {
	q = q.normalize()
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}
	var (
		daily    []repository.DailySalesResult
		top      []repository.TopProductResult
		payments []repository.PaymentBreakdownResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TodayRevenue, stats.TodaySales, err = s.analyticsRepo.Revenue(ctx, startOfDay)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MonthlyRevenue, stats.MonthlySales, err = s.analyticsRepo.Revenue(ctx, startOfMonth)
		return err
	})
	g.Go(func() error {
		var err error
		stats.LowStockCount, err = s.productRepo.CountLowStock(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.analyticsRepo.DailySales(ctx, q.Days)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.analyticsRepo.TopProducts(ctx, q.Top)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.analyticsRepo.PaymentBreakdown(ctx, startOfMonth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.MonthlySales > 0 {
		stats.AverageSale = stats.MonthlyRevenue.Div(decimal.NewFromInt(stats.MonthlySales)).Round(2)
	}

	stats.DailySales = make([]DailySalesPoint, 0, len(daily))
	for _, d := range daily {
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:    d.Date.Format("2006-01-02"),
			Sales:   d.SaleCount,
			Revenue: d.Revenue,
		})
	}

	stats.TopProducts = make([]TopProductPoint, 0, len(top))
	for _, p := range top {
		stats.TopProducts = append(stats.TopProducts, TopProductPoint{
			ProductID:    p.ProductID.String(),
			Name:         p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		})
	}

	stats.PaymentBreakdown = make([]PaymentSlicePoint, 0, len(payments))
	for _, p := range payments {
		stats.PaymentBreakdown = append(stats.PaymentBreakdown, PaymentSlicePoint{
			Method: p.PaymentMethod,
			Label:  enum.PaymentMethod(p.PaymentMethod).Label(),
			Sales:  p.SaleCount,
			Total:  p.Total,
		})
	}

	return stats, nil
}
