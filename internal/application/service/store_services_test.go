package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/application/report"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/database"
	infra "github.com/sangkips/retailhub-api/internal/infrastructure/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func statusOf(err error) int {
	return apperror.GetAppError(err).Code
}

func TestCRUDServiceValidatesAndNormalizes(t *testing.T) {
	db := newStoreDB(t)
	svc := NewCRUDService(infra.NewCRUDRepository[entity.Category](db), "Category")
	ctx := context.Background()

	_, err := svc.Create(ctx, &entity.Category{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(err))

	created, err := svc.Create(ctx, &entity.Category{Name: "Hot Drinks"})
	require.NoError(t, err)
	assert.Equal(t, "hot-drinks", created.Slug)

	_, err = svc.Get(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, "Category not found", err.Error())
}

func TestCRUDServiceUpdateAndDelete(t *testing.T) {
	db := newStoreDB(t)
	svc := NewCRUDService(infra.NewCRUDRepository[entity.Employee](db), "Employee")
	ctx := context.Background()

	emp, err := svc.Create(ctx, &entity.Employee{Name: "Ada", Position: "Cashier", Salary: decimal.NewFromInt(900)})
	require.NoError(t, err)
	assert.Equal(t, "active", emp.Status)

	updated, err := svc.Update(ctx, emp.ID, &entity.Employee{Name: "Ada L.", Position: "Supervisor", Salary: decimal.NewFromInt(1200)})
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", updated.Position)
	assert.Equal(t, "active", updated.Status)

	require.NoError(t, svc.Delete(ctx, emp.ID))
	err = svc.Delete(ctx, emp.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestCRUDServiceDataset(t *testing.T) {
	db := newStoreDB(t)
	svc := NewCRUDService(infra.NewCRUDRepository[entity.BankAccount](db), "Bank account")
	ctx := context.Background()

	_, err := svc.Create(ctx, &entity.BankAccount{AccountName: "Till", AccountNumber: "001", Balance: decimal.RequireFromString("120.5")})
	require.NoError(t, err)

	ds, err := svc.Dataset(ctx, &repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bank Accounts", ds.Name)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Till", ds.Rows[0]["Account Name"])
	assert.Equal(t, "120.5", ds.Rows[0]["Balance"])
}

func TestInventoryAdjustStock(t *testing.T) {
	db := newStoreDB(t)
	products := infra.NewProductRepository(db)
	svc := NewInventoryService(infra.NewStockRepository(db), products, zap.NewNop())
	ctx := context.Background()

	p := &entity.Product{Name: "Beans", Slug: "beans", Code: "B-1", Quantity: 5}
	require.NoError(t, products.Create(ctx, p))

	adj, err := svc.AdjustStock(ctx, &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentAddition, Quantity: 3, Reason: "delivery"})
	require.NoError(t, err)
	assert.Equal(t, "approved", adj.Status)
	assert.Equal(t, 8, adj.Product.Quantity)

	_, err = svc.AdjustStock(ctx, &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentSubtraction, Quantity: 9})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	stored, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Quantity)

	_, err = svc.AdjustStock(ctx, &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentAddition, Quantity: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(err))

	_, err = svc.AdjustStock(ctx, &AdjustStockInput{ProductID: uuid.New(), Type: enum.AdjustmentAddition, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	page, err := svc.ListAdjustments(ctx, &repository.StockFilterParams{ProductID: &p.ID})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestInventoryTransferStock(t *testing.T) {
	db := newStoreDB(t)
	products := infra.NewProductRepository(db)
	svc := NewInventoryService(infra.NewStockRepository(db), products, zap.NewNop())
	ctx := context.Background()

	p := &entity.Product{Name: "Tea", Slug: "tea", Code: "T-1", Quantity: 4}
	require.NoError(t, products.Create(ctx, p))

	_, err := svc.TransferStock(ctx, &TransferStockInput{ProductID: p.ID, FromLocation: "Store", ToLocation: "Store", Quantity: 1})
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(err))

	_, err = svc.TransferStock(ctx, &TransferStockInput{ProductID: p.ID, FromLocation: "Store", ToLocation: "Kiosk", Quantity: 10})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	tr, err := svc.TransferStock(ctx, &TransferStockInput{ProductID: p.ID, FromLocation: "Store", ToLocation: "Kiosk", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "completed", tr.Status)
}

func TestBackupRoundTrip(t *testing.T) {
	src := newStoreDB(t)
	ctx := context.Background()
	categories := infra.NewCRUDRepository[entity.Category](src)
	require.NoError(t, categories.Create(ctx, &entity.Category{Name: "Snacks", Slug: "snacks"}))

	doc, err := NewBackupService(infra.NewBackupRepository(src), zap.NewNop()).Export(ctx, []string{"categories"})
	require.NoError(t, err)
	require.Len(t, doc.Tables["categories"], 1)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	dst := newStoreDB(t)
	result := NewBackupService(infra.NewBackupRepository(dst), zap.NewNop()).Restore(ctx, data)
	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 1, result.Tables["categories"])

	restored, err := infra.NewCRUDRepository[entity.Category](dst).All(ctx, nil)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "Snacks", restored[0].Name)
}

func TestBackupRejectsUnknownTables(t *testing.T) {
	svc := NewBackupService(infra.NewBackupRepository(newStoreDB(t)), zap.NewNop())

	_, err := svc.Export(context.Background(), []string{"users"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	result := svc.Restore(context.Background(), []byte(`{"tables":{"users":[{"id":"x"}],"units":[{"name":"no id"}]}}`))
	assert.Equal(t, 0, result.Restored)
	assert.Equal(t, 2, result.Skipped)

	result = svc.Restore(context.Background(), []byte(`not json`))
	assert.Equal(t, 0, result.Restored)
	assert.Equal(t, 0, result.Skipped)
}

func newReportFixture(t *testing.T) (*ReportService, repository.SaleRepository) {
	t.Helper()
	db := newStoreDB(t)
	sales := infra.NewSaleRepository(db)
	svc := NewReportService(
		sales,
		infra.NewStockRepository(db),
		infra.NewCRUDRepository[entity.Payroll](db),
		infra.NewCRUDRepository[entity.Employee](db),
		infra.NewCRUDRepository[entity.BankAccount](db),
	)
	return svc, sales
}

func commitSale(t *testing.T, sales repository.SaleRepository, invoice string, method enum.PaymentMethod, total string, at time.Time) {
	t.Helper()
	amount := decimal.RequireFromString(total)
	require.NoError(t, sales.Commit(context.Background(), &entity.Sale{
		InvoiceNo:     invoice,
		CashierID:     uuid.New(),
		CashierName:   "Ada",
		PaymentMethod: method,
		Status:        enum.SaleStatusCompleted,
		Subtotal:      amount,
		Tax:           decimal.Zero,
		Total:         amount,
		SoldAt:        at,
	}))
}

func TestReportRunFiltersAndSummarizes(t *testing.T) {
	svc, sales := newReportFixture(t)
	day := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	commitSale(t, sales, "INV-1", enum.PaymentMethodCash, "10.00", day)
	commitSale(t, sales, "INV-2", enum.PaymentMethodCard, "30.00", day)
	commitSale(t, sales, "INV-3", enum.PaymentMethodCash, "99.00", day.AddDate(0, 0, -5))

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	table, err := svc.Run(context.Background(), "sales-summary", report.Criteria{From: &from, To: &from}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Date", "Employee", "Payment Method", "Amount"}, table.Columns)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Summary.TotalRecords)
	assert.Equal(t, "40.00", table.Summary.TotalAmount.StringFixed(2))
	assert.Equal(t, "20.00", table.Summary.AverageAmount.StringFixed(2))

	table, err = svc.Run(context.Background(), "sales-summary",
		report.Criteria{Dimensions: map[string]string{report.FilterPayment: "Cash"}},
		&pagination.PaginationParams{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, int64(2), table.Pagination.Total)
	assert.Equal(t, 2, table.Summary.TotalRecords)
}

func TestReportUnknownID(t *testing.T) {
	svc, _ := newReportFixture(t)

	_, err := svc.Run(context.Background(), "nope", report.Criteria{}, nil)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestReportDatasetsCoverCatalog(t *testing.T) {
	svc, sales := newReportFixture(t)
	commitSale(t, sales, "INV-1", enum.PaymentMethodMobile, "5.00", time.Now())

	sets, err := svc.Datasets(context.Background(), report.Criteria{})
	require.NoError(t, err)
	assert.Len(t, sets, len(report.Catalog()))
	for _, ds := range sets {
		assert.Equal(t, "ID", ds.Columns[0])
		assert.Equal(t, "Amount", ds.Columns[len(ds.Columns)-1])
	}
}
