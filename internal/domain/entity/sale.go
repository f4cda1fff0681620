package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a finalized checkout. Sales are never updated or deleted.
type Sale struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo        string             `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	CashierID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName      string             `gorm:"size:255" json:"cashier_name"`
	PaymentMethod    enum.PaymentMethod `gorm:"size:20;not null;index" json:"payment_method"`
	PaymentReference string             `gorm:"size:100" json:"payment_reference,omitempty"`
	Status           enum.SaleStatus    `gorm:"size:20;not null;default:'completed'" json:"status"`
	TotalItems       int                `gorm:"default:0" json:"total_items"`
	Subtotal         decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	Tax              decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"tax"`
	Discount         decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"discount"`
	Total            decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"total"`
	AmountPaid       decimal.Decimal    `gorm:"type:numeric(14,2);default:0" json:"amount_paid"`
	Change           decimal.Decimal    `gorm:"type:numeric(14,2);default:0" json:"change"`
	SoldAt           time.Time          `gorm:"not null;index" json:"sold_at"`
	CreatedAt        time.Time          `json:"created_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is an immutable snapshot of a cart line at checkout time
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Category    string          `gorm:"size:255" json:"category,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
