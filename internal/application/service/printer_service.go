package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/money"
	"github.com/sangkips/retailhub-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer    printer.Printer
	saleRepo   repository.SaleRepository
	header     entity.ReceiptHeader
	taxLabel   string
	width      int
	openDrawer bool
	log        *zap.Logger
}

// PrinterOptions configures receipt layout.
type PrinterOptions struct {
	Header     entity.ReceiptHeader
	TaxLabel   string
	Width      int
	OpenDrawer bool
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, saleRepo repository.SaleRepository, opts PrinterOptions, log *zap.Logger) *PrinterService {
	return &PrinterService{
		printer:    p,
		saleRepo:   saleRepo,
		header:     opts.Header,
		taxLabel:   opts.TaxLabel,
		width:      opts.Width,
		openDrawer: opts.OpenDrawer,
		log:        log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.Ready(ctx),
		Type:       kind,
		Width:      s.width,
	}
}

// TestPrint sends a sample receipt to the printer. The receipt is returned
// even when printing fails so callers can preview it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	two := decimal.NewFromInt(2)
	ten := decimal.NewFromInt(10)
	receipt := &entity.Receipt{
		Header:        s.header,
		InvoiceNo:     "TEST-001",
		Date:          time.Now().Format("2006-01-02 15:04"),
		Cashier:       "System",
		PaymentMethod: enum.PaymentMethodCash.Label(),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: ten, Total: ten},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: ten},
		},
		Subtotal: ten.Mul(two),
		TaxLabel: s.taxLabel,
		Tax:      decimal.Zero,
		Total:    ten.Mul(two),
		Paid:     ten.Mul(two),
	}

	if err := s.printer.Print(ctx, s.FormatReceipt(receipt, false)); err != nil {
		return receipt, apperror.NewUnavailableError("Test print failed", err)
	}
	return receipt, nil
}

// PrintSaleReceipt fetches a sale and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := entity.NewReceipt(s.header, sale, s.taxLabel)
	drawer := s.openDrawer && sale.PaymentMethod == enum.PaymentMethodCash
	if err := s.printer.Print(ctx, s.FormatReceipt(receipt, drawer)); err != nil {
		s.log.Error("printer error", zap.String("sale_id", saleID.String()), zap.Error(err))
		return receipt, apperror.NewUnavailableError("Failed to print receipt", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt, openDrawer bool) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.AlignLeft).Rule('-')

	doc.Pair("Invoice:", r.InvoiceNo).
		Pair("Date:", r.Date)
	if r.Cashier != "" {
		doc.Pair("Cashier:", r.Cashier)
	}
	doc.Pair("Payment:", r.PaymentMethod)

	doc.Rule('-')

	// Items
	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, money.Format(item.Total))
		if item.Quantity > 1 {
			doc.Linef("  @ %s each", money.Format(item.UnitPrice))
		}
	}

	doc.Rule('-')

	// Totals
	doc.Pair("Subtotal:", money.Format(r.Subtotal))
	if r.Discount.IsPositive() {
		doc.Pair("Discount:", "-"+money.Format(r.Discount))
	}
	doc.Pair(r.TaxLabel+":", money.Format(r.Tax))
	doc.Bold(true).
		Pair("TOTAL:", money.Format(r.Total)).
		Bold(false)
	if r.Paid.IsPositive() {
		doc.Pair("Paid:", money.Format(r.Paid))
	}
	if r.Change.IsPositive() {
		doc.Pair("Change:", money.Format(r.Change))
	}

	doc.Rule('-')

	footer := r.Header.Footer
	if footer == "" {
		footer = "Thank you for your business!"
	}
	doc.Align(printer.AlignCenter).
		Feed(1).
		Line(footer).
		Align(printer.AlignLeft).
		Feed(3).
		Cut(true)

	if openDrawer {
		doc.OpenDrawer()
	}

	return doc.Bytes()
}
