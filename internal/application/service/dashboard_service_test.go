package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalytics struct {
	days, top int
	err       error
}

func (f *fakeAnalytics) TopProducts(_ context.Context, limit int) ([]repository.TopProductResult, error) {
	f.top = limit
	return []repository.TopProductResult{
		{ProductID: uuid.New(), ProductName: "Espresso", QuantitySold: 12, Revenue: decimal.NewFromInt(36)},
	}, nil
}

func (f *fakeAnalytics) PaymentBreakdown(context.Context, time.Time) ([]repository.PaymentBreakdownResult, error) {
	return []repository.PaymentBreakdownResult{
		{PaymentMethod: "cash", SaleCount: 3, Total: decimal.NewFromInt(30)},
		{PaymentMethod: "mobile", SaleCount: 1, Total: decimal.NewFromInt(10)},
	}, nil
}

func (f *fakeAnalytics) DailySales(_ context.Context, days int) ([]repository.DailySalesResult, error) {
	f.days = days
	out := make([]repository.DailySalesResult, days)
	for i := range out {
		out[i] = repository.DailySalesResult{Date: time.Date(2026, 3, 1+i, 0, 0, 0, 0, time.UTC)}
	}
	return out, nil
}

func (f *fakeAnalytics) Revenue(_ context.Context, from time.Time) (decimal.Decimal, int64, error) {
	if f.err != nil {
		return decimal.Zero, 0, f.err
	}
	if from.Day() == 1 {
		return decimal.NewFromInt(40), 4, nil
	}
	return decimal.NewFromInt(10), 1, nil
}

type lowStockCatalog struct {
	repository.ProductRepository
	count int64
}

func (c *lowStockCatalog) CountLowStock(context.Context) (int64, error) {
	return c.count, nil
}

func newDashboard(a *fakeAnalytics) *DashboardService {
	svc := NewDashboardService(a, &lowStockCatalog{count: 2})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestDashboardStats(t *testing.T) {
	a := &fakeAnalytics{}
	stats, err := newDashboard(a).GetStats(context.Background(), DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, defaultDashboardDays, a.days)
	assert.Equal(t, defaultDashboardTop, a.top)
	assert.Equal(t, "10", stats.TodayRevenue.String())
	assert.Equal(t, int64(4), stats.MonthlySales)
	assert.Equal(t, "10", stats.AverageSale.String())
	assert.Equal(t, int64(2), stats.LowStockCount)
	require.Len(t, stats.DailySales, defaultDashboardDays)
	assert.Equal(t, "2026-03-01", stats.DailySales[0].Date)
	require.Len(t, stats.PaymentBreakdown, 2)
	assert.Equal(t, "Cash", stats.PaymentBreakdown[0].Label)
	assert.Equal(t, "Mobile", stats.PaymentBreakdown[1].Label)
	assert.Equal(t, "Espresso", stats.TopProducts[0].Name)
}

func TestDashboardQueryIsClamped(t *testing.T) {
	a := &fakeAnalytics{}
	_, err := newDashboard(a).GetStats(context.Background(), DashboardQuery{Days: 365, Top: 3})
	require.NoError(t, err)
	assert.Equal(t, maxDashboardDays, a.days)
	assert.Equal(t, 3, a.top)
}

func TestDashboardStatsPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := newDashboard(&fakeAnalytics{err: boom}).GetStats(context.Background(), DashboardQuery{})
	assert.ErrorIs(t, err, boom)
}
