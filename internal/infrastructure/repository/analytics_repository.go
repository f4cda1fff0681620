package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) TopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			si.product_id AS product_id,
			MAX(si.product_name) AS product_name,
			COALESCE(SUM(si.quantity), 0) AS quantity_sold,
			COALESCE(SUM(si.line_total), 0) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = 'completed'
		GROUP BY si.product_id
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) PaymentBreakdown(ctx context.Context, from time.Time) ([]domainRepo.PaymentBreakdownResult, error) {
	var results []domainRepo.PaymentBreakdownResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COUNT(*) AS sale_count,
			COALESCE(SUM(total), 0) AS total
		FROM sales
		WHERE status = 'completed' AND sold_at >= ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, from).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) DailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		revenue, count, err := r.revenueBetween(r.db.WithContext(ctx), startOfDay, &endOfDay)
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:      startOfDay,
			SaleCount: int(count),
			Revenue:   revenue,
		})
	}

	return results, nil
}

func (r *analyticsRepository) Revenue(ctx context.Context, from time.Time) (decimal.Decimal, int64, error) {
	return r.revenueBetween(r.db.WithContext(ctx), from, nil)
}

func (r *analyticsRepository) revenueBetween(db *gorm.DB, from time.Time, to *time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Revenue   decimal.Decimal
		SaleCount int64
	}

	query := db.Table("sales").
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS sale_count").
		Where("status = ? AND sold_at >= ?", "completed", from)
	if to != nil {
		query = query.Where("sold_at < ?", *to)
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return row.Revenue, row.SaleCount, nil
}
