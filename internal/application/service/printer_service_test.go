package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var drawerKick = []byte{0x1B, 'p', 0x00, 0x19, 0xFA}

func newPrinterFixture(openDrawer bool) (*PrinterService, *printer.MemoryPrinter, *fakeLedger) {
	p := printer.NewMemoryPrinter()
	ledger := &fakeLedger{}
	svc := NewPrinterService(p, ledger, PrinterOptions{
		Header:     entity.ReceiptHeader{StoreName: "Corner Shop", Footer: "See you soon"},
		TaxLabel:   "Tax (8%)",
		Width:      printer.Width80mm,
		OpenDrawer: openDrawer,
	}, zap.NewNop())
	return svc, p, ledger
}

func committedSale(t *testing.T, ledger *fakeLedger, method enum.PaymentMethod) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		InvoiceNo:     "INV-20260101-0001",
		CashierName:   "Ada",
		PaymentMethod: method,
		Subtotal:      decimal.NewFromInt(25),
		Tax:           decimal.NewFromInt(2),
		Total:         decimal.NewFromInt(27),
		AmountPaid:    decimal.NewFromInt(30),
		Change:        decimal.NewFromInt(3),
		Items: []entity.SaleItem{
			{ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(20)},
			{ProductName: "Muffin", Quantity: 1, UnitPrice: decimal.NewFromInt(5), LineTotal: decimal.NewFromInt(5)},
		},
	}
	require.NoError(t, ledger.Commit(context.Background(), sale))
	return sale
}

func TestPrintSaleReceipt(t *testing.T) {
	svc, p, ledger := newPrinterFixture(true)
	sale := committedSale(t, ledger, enum.PaymentMethodCash)

	receipt, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260101-0001", receipt.InvoiceNo)
	assert.Equal(t, "Cash", receipt.PaymentMethod)
	require.Len(t, receipt.Items, 2)

	jobs := p.Jobs()
	require.Len(t, jobs, 1)
	job := string(jobs[0])
	assert.Contains(t, job, "Corner Shop")
	assert.Contains(t, job, "2x Coffee")
	assert.Contains(t, job, "$27.00")
	assert.Contains(t, job, "Tax (8%):")
	assert.Contains(t, job, "Change:")
	assert.Contains(t, job, "See you soon")
	assert.True(t, bytes.HasSuffix(jobs[0], drawerKick))
}

func TestPrintSaleReceiptKeepsDrawerClosedForCard(t *testing.T) {
	svc, p, ledger := newPrinterFixture(true)
	sale := committedSale(t, ledger, enum.PaymentMethodCard)

	_, err := svc.PrintSaleReceipt(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(p.Jobs()[0], drawerKick))
}

func TestPrintSaleReceiptUnknownSale(t *testing.T) {
	svc, p, _ := newPrinterFixture(false)

	_, err := svc.PrintSaleReceipt(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	assert.Empty(t, p.Jobs())
}

func TestPrinterStatusWithoutHardware(t *testing.T) {
	svc, _, _ := newPrinterFixture(false)

	status := svc.GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Type)
	assert.Equal(t, printer.Width80mm, status.Width)
}

func TestTestPrint(t *testing.T) {
	svc, p, _ := newPrinterFixture(false)

	receipt, err := svc.TestPrint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TEST-001", receipt.InvoiceNo)
	require.Len(t, p.Jobs(), 1)
	assert.Contains(t, string(p.Jobs()[0]), "Test Item 2")
}
