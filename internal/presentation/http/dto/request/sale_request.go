package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartRequest adds one unit of a product to the caller's cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CheckoutRequest settles the caller's cart
type CheckoutRequest struct {
	PaymentMethod string           `json:"payment_method" binding:"required"`
	CardNumber    string           `json:"card_number"`
	Expiry        string           `json:"expiry"`
	CVV           string           `json:"cvv"`
	Phone         string           `json:"phone"`
	Discount      decimal.Decimal  `json:"discount"`
	CashReceived  *decimal.Decimal `json:"cash_received"`
}

// SaleFilterRequest represents sale list filters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	PaymentMethod string `form:"payment_method"`
	CashierID     string `form:"cashier_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
