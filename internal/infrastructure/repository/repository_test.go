package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/database"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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

func seedProduct(t *testing.T, db *gorm.DB, name string, qty int, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:         name,
		Slug:         uuid.NewString(),
		Code:         uuid.NewString(),
		Quantity:     qty,
		SellingPrice: decimal.RequireFromString(price),
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func TestCRUDRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewCRUDRepository[entity.BankAccount](db)
	ctx := context.Background()

	acct := &entity.BankAccount{AccountName: "Main Till", AccountNumber: "001", BankName: "Equity", Status: "active", Balance: decimal.NewFromInt(500)}
	require.NoError(t, repo.Create(ctx, acct))
	require.NotEqual(t, uuid.Nil, acct.ID)

	got, err := repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Main Till", got.AccountName)

	changes := &entity.BankAccount{AccountName: "Float", AccountNumber: "001", BankName: "Equity", Status: "inactive", Balance: decimal.NewFromInt(20)}
	require.NoError(t, repo.Update(ctx, got, changes))

	got, err = repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "Float", got.AccountName)
	assert.Equal(t, "inactive", got.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(got.Balance))

	require.NoError(t, repo.Delete(ctx, acct.ID))
	got, err = repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCRUDRepositoryListSearchAndFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewCRUDRepository[entity.Employee](db)
	ctx := context.Background()

	for _, e := range []entity.Employee{
		{Name: "Alice Wanjiru", Position: "cashier", Status: "active"},
		{Name: "Brian Otieno", Position: "manager", Status: "active"},
		{Name: "Alina Mwangi", Position: "cashier", Status: "inactive"},
	} {
		e := e
		require.NoError(t, repo.Create(ctx, &e))
	}

	items, total, err := repo.List(ctx, &domainRepo.ListParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Search:     "ALI",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ctx, &domainRepo.ListParams{
		Search:  "ali",
		Filters: map[string]string{"status": "active", "unknown_column": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Alice Wanjiru", items[0].Name)

	all, err := repo.All(ctx, &domainRepo.ListParams{Filters: map[string]string{"status": "all"}})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStockAdjustmentIsTransactional(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "Rice 1kg", 5, "2.50")

	err := repo.ApplyAdjustment(ctx, &entity.StockAdjustment{
		ProductID: p.ID, Type: enum.AdjustmentSubtraction, Quantity: 8, AdjustedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domainRepo.ErrInsufficientStock)

	var count int64
	db.Model(&entity.StockAdjustment{}).Count(&count)
	assert.Zero(t, count)

	require.NoError(t, repo.ApplyAdjustment(ctx, &entity.StockAdjustment{
		ProductID: p.ID, Type: enum.AdjustmentAddition, Quantity: 3, Reason: "delivery", AdjustedAt: time.Now().UTC(),
	}))

	reloaded, err := NewProductRepository(db).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.Quantity)

	list, total, err := repo.ListAdjustments(ctx, &domainRepo.StockFilterParams{ProductID: &p.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, "Rice 1kg", list[0].Product.Name)
}

func TestStockTransferChecksQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "Sugar", 4, "1.00")

	err := repo.RecordTransfer(ctx, &entity.StockTransfer{ProductID: p.ID, FromLocation: "Store", ToLocation: "Shelf", Quantity: 5, TransferredAt: time.Now().UTC()})
	assert.ErrorIs(t, err, domainRepo.ErrInsufficientStock)

	require.NoError(t, repo.RecordTransfer(ctx, &entity.StockTransfer{ProductID: p.ID, FromLocation: "Store", ToLocation: "Shelf", Quantity: 4, TransferredAt: time.Now().UTC()}))

	transfers, err := repo.TransfersBetween(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, transfers, 1)
}

func TestSaleCommitStoresItemsAndDrawsStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()
	a := seedProduct(t, db, "A", 10, "10")
	b := seedProduct(t, db, "B", 1, "5")

	sale := &entity.Sale{
		InvoiceNo:     "INV-1",
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		Status:        enum.SaleStatusCompleted,
		Subtotal:      decimal.NewFromInt(25),
		Tax:           decimal.RequireFromString("2.00"),
		Total:         decimal.NewFromInt(27),
		SoldAt:        time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		Items: []entity.SaleItem{
			{ProductID: a.ID, ProductName: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(20)},
			{ProductID: b.ID, ProductName: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(5), LineTotal: decimal.NewFromInt(5)},
		},
	}
	require.NoError(t, repo.Commit(ctx, sale))
	require.NotEqual(t, uuid.Nil, sale.ID)

	got, err := repo.GetByInvoiceNo(ctx, "INV-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 2)
	assert.True(t, decimal.NewFromInt(27).Equal(got.Total))

	products := NewProductRepository(db)
	pa, _ := products.GetByID(ctx, a.ID)
	pb, _ := products.GetByID(ctx, b.ID)
	assert.Equal(t, 8, pa.Quantity)
	assert.Equal(t, 0, pb.Quantity)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	inRange, err := repo.Between(ctx, &from, &to)
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	later := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	none, err := repo.Between(ctx, &later, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBackupDumpAndUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewBackupRepository(db)
	ctx := context.Background()

	id := uuid.NewString()
	row := map[string]any{"id": id, "name": "Drinks", "slug": "drinks"}
	require.NoError(t, repo.Upsert(ctx, "categories", row))

	row["name"] = "Beverages"
	require.NoError(t, repo.Upsert(ctx, "categories", row))

	rows, err := repo.Dump(ctx, "categories")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Beverages", rows[0]["name"])
}

func TestProductListLowStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	low := seedProduct(t, db, "Milk", 1, "1.20")
	low.QuantityAlert = 5
	require.NoError(t, repo.Update(ctx, low))
	seedProduct(t, db, "Bread", 50, "0.90")

	items, total, err := repo.List(ctx, &domainRepo.ProductFilterParams{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Milk", items[0].Name)

	count, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIdempotencyKeysExpireAndReplace(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
		Key: "till-1", UserID: owner, Endpoint: "POST /api/v1/checkout",
		RequestHash: "a", ResponseCode: 201, ResponseBody: `{"n":1}`, ExpiresAt: now.Add(time.Minute),
	}))

	found, err := repo.Lookup(ctx, owner, "till-1", now)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, `{"n":1}`, found.ResponseBody)

	missing, err := repo.Lookup(ctx, owner, "till-1", now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Nil(t, missing)

	other, err := repo.Lookup(ctx, uuid.New(), "till-1", now)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Save(ctx, &entity.IdempotencyKey{
		Key: "till-1", UserID: owner, Endpoint: "POST /api/v1/checkout",
		RequestHash: "b", ResponseCode: 201, ResponseBody: `{"n":2}`, ExpiresAt: now.Add(time.Hour),
	}))
	found, err = repo.Lookup(ctx, owner, "till-1", now)
	require.NoError(t, err)
	assert.Equal(t, "b", found.RequestHash)

	n, err := repo.Purge(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
