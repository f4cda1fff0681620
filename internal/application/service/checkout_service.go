package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/events"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"github.com/sangkips/retailhub-api/pkg/money"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// CheckoutService turns a cart into a committed sale
type CheckoutService struct {
	carts     *CartService
	saleRepo  repository.SaleRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	taxRate   decimal.Decimal
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service. taxRate is a fraction,
// e.g. 0.08.
func NewCheckoutService(
	carts *CartService,
	saleRepo repository.SaleRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
	taxRate float64,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		saleRepo:  saleRepo,
		publisher: publisher,
		metrics:   m,
		log:       log,
		taxRate:   decimal.NewFromFloat(taxRate),
		now:       time.Now,
	}
}

// Totals are the amounts due for a cart
type Totals struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// TaxLabel renders the rate for receipts, e.g. "Tax (8%)"
func (s *CheckoutService) TaxLabel() string {
	return "Tax (" + s.taxRate.Mul(decimal.NewFromInt(100)).String() + "%)"
}

// ComputeTotals prices the cart exactly: tax = subtotal × rate and
// total = subtotal + tax − discount. Rounding to cents happens when the sale
// is recorded.
func (s *CheckoutService) ComputeTotals(cart *entity.Cart, discount decimal.Decimal) Totals {
	subtotal := cart.Subtotal()
	tax := subtotal.Mul(s.taxRate)
	return Totals{
		ItemCount: cart.ItemCount(),
		Subtotal:  subtotal,
		Tax:       tax,
		Discount:  discount,
		Total:     subtotal.Add(tax).Sub(discount),
	}
}

// PaymentFields carries the method specific inputs. Only presence is checked.
type PaymentFields struct {
	CardNumber string
	Expiry     string
	CVV        string
	Phone      string
}

// ValidatePayment checks that the fields required by method are present.
func ValidatePayment(method enum.PaymentMethod, fields PaymentFields) error {
	var errs []apperror.FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, apperror.Required(field))
		}
	}

	switch method {
	case enum.PaymentMethodCash:
	case enum.PaymentMethodCard:
		required("card_number", fields.CardNumber)
		required("expiry", fields.Expiry)
		required("cvv", fields.CVV)
	case enum.PaymentMethodMobile:
		required("phone", fields.Phone)
	default:
		errs = append(errs, apperror.FieldError{Field: "payment_method", Message: "payment_method must be one of cash, card, mobile"})
	}

	if len(errs) > 0 {
		return apperror.NewValidationMessage("Payment details are incomplete", errs...)
	}
	return nil
}

// paymentReference is stored with the sale; card numbers are masked.
func paymentReference(method enum.PaymentMethod, fields PaymentFields) string {
	switch method {
	case enum.PaymentMethodCard:
		digits := strings.ReplaceAll(strings.TrimSpace(fields.CardNumber), " ", "")
		if len(digits) > 4 {
			digits = digits[len(digits)-4:]
		}
		return "**** " + digits
	case enum.PaymentMethodMobile:
		return strings.TrimSpace(fields.Phone)
	}
	return ""
}

// CheckoutInput is a payment request for the owner's cart
type CheckoutInput struct {
	Owner        uuid.UUID
	CashierName  string
	Method       enum.PaymentMethod
	Fields       PaymentFields
	Discount     decimal.Decimal
	CashReceived *decimal.Decimal
}

// CheckoutResult identifies the committed sale
type CheckoutResult struct {
	SaleID uuid.UUID    `json:"sale_id"`
	Sale   *entity.Sale `json:"sale"`
	// CartCleared is false when the sale committed but the cart could not be
	// removed; the client should clear it explicitly.
	CartCleared bool `json:"cart_cleared"`
}

// CompleteCheckout validates the payment, commits the sale and clears the
// cart. On any validation failure the cart is untouched and nothing is
// committed.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	var sale *entity.Sale

	cleared, err := s.carts.Settle(ctx, input.Owner, func(cart *entity.Cart) error {
		if cart.IsEmpty() {
			return apperror.NewValidationMessage("Cart is empty", apperror.FieldError{Field: "cart", Message: "add at least one item before checkout"})
		}
		if err := ValidatePayment(input.Method, input.Fields); err != nil {
			return err
		}
		if input.Discount.IsNegative() {
			return apperror.NewValidationMessage("Invalid discount", apperror.FieldError{Field: "discount", Message: "discount cannot be negative"})
		}

		totals := s.ComputeTotals(cart, input.Discount)
		if totals.Total.IsNegative() {
			return apperror.NewValidationMessage("Invalid discount", apperror.FieldError{Field: "discount", Message: "discount cannot exceed the amount due"})
		}

		due := money.Round2(totals.Total)
		paid, change := due, decimal.Zero
		if input.Method == enum.PaymentMethodCash && input.CashReceived != nil {
			paid = *input.CashReceived
			change = paid.Sub(due)
			if change.IsNegative() {
				return apperror.NewValidationMessage("Insufficient cash received", apperror.FieldError{Field: "cash_received", Message: "cash received is less than the total"})
			}
		}

		sale = s.buildSale(cart, input, totals, paid, change)
		return s.saleRepo.Commit(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveCheckout(input.Method.String())
	s.publish(ctx, sale)

	s.log.Info("sale completed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("invoice_no", sale.InvoiceNo),
		zap.String("payment_method", sale.PaymentMethod.String()),
		zap.String("total", sale.Total.StringFixed(2)),
	)

	return &CheckoutResult{SaleID: sale.ID, Sale: sale, CartCleared: cleared}, nil
}

// recorded rounds totals to cents for the ledger. Tax absorbs the rounding
// difference so the stored subtotal + tax − discount equals the stored total.
func recorded(t Totals) Totals {
	subtotal := money.Round2(t.Subtotal)
	discount := money.Round2(t.Discount)
	total := money.Round2(t.Total)
	t.Subtotal, t.Discount, t.Total = subtotal, discount, total
	t.Tax = total.Sub(subtotal).Add(discount)
	return t
}

func (s *CheckoutService) buildSale(cart *entity.Cart, input *CheckoutInput, totals Totals, paid, change decimal.Decimal) *entity.Sale {
	now := s.now().UTC()
	totals = recorded(totals)
	sale := &entity.Sale{
		InvoiceNo:        utils.GenerateInvoiceNo(now),
		CashierID:        input.Owner,
		CashierName:      input.CashierName,
		PaymentMethod:    input.Method,
		PaymentReference: paymentReference(input.Method, input.Fields),
		Status:           enum.SaleStatusCompleted,
		TotalItems:       totals.ItemCount,
		Subtotal:         totals.Subtotal,
		Tax:              totals.Tax,
		Discount:         totals.Discount,
		Total:            totals.Total,
		AmountPaid:       paid,
		Change:           change,
		SoldAt:           now,
		Items:            make([]entity.SaleItem, 0, len(cart.Lines)),
	}
	for _, line := range cart.Lines {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Category:    line.Product.Category,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			LineTotal:   money.Round2(line.LineTotal()),
		})
	}
	return sale
}

// saleEvent is the sale.completed payload
type saleEvent struct {
	SaleID        uuid.UUID       `json:"sale_id"`
	InvoiceNo     string          `json:"invoice_no"`
	CashierID     uuid.UUID       `json:"cashier_id"`
	PaymentMethod string          `json:"payment_method"`
	TotalItems    int             `json:"total_items"`
	Total         decimal.Decimal `json:"total"`
	SoldAt        time.Time       `json:"sold_at"`
}

func (s *CheckoutService) publish(ctx context.Context, sale *entity.Sale) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.Publish(ctx, events.SaleCompleted, sale.ID.String(), saleEvent{
		SaleID:        sale.ID,
		InvoiceNo:     sale.InvoiceNo,
		CashierID:     sale.CashierID,
		PaymentMethod: sale.PaymentMethod.String(),
		TotalItems:    sale.TotalItems,
		Total:         sale.Total,
		SoldAt:        sale.SoldAt,
	})
	switch {
	case err == nil:
	case events.IsUnavailable(err):
		s.log.Debug("sale event skipped, event bus unavailable",
			zap.String("sale_id", sale.ID.String()),
			zap.String("breaker", s.publisher.State()))
	default:
		s.log.Warn("sale event not published", zap.String("sale_id", sale.ID.String()), zap.Error(err))
	}
}
