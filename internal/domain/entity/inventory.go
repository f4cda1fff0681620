package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockAdjustment records a manual change to a product's on-hand quantity
type StockAdjustment struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID     uuid.UUID           `gorm:"type:uuid;index" json:"user_id"`
	Type       enum.AdjustmentType `gorm:"default:0" json:"type"`
	Quantity   int                 `gorm:"not null" json:"quantity"`
	Reason     string              `gorm:"size:255" json:"reason"`
	Status     string              `gorm:"size:20;default:'approved'" json:"status"`
	AdjustedAt time.Time           `gorm:"not null;index" json:"adjusted_at"`
	CreatedAt  time.Time           `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new adjustment
func (a *StockAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockAdjustment model
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// Delta is the signed change applied to the product quantity
func (a *StockAdjustment) Delta() int {
	return a.Type.Sign() * a.Quantity
}

// StockTransfer records units moved between two locations
type StockTransfer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID        uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	FromLocation  string    `gorm:"size:255;not null" json:"from_location"`
	ToLocation    string    `gorm:"size:255;not null" json:"to_location"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Status        string    `gorm:"size:20;default:'completed'" json:"status"`
	TransferredAt time.Time `gorm:"not null;index" json:"transferred_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transfer
func (t *StockTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransfer model
func (StockTransfer) TableName() string {
	return "stock_transfers"
}
