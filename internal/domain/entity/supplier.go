package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"gorm.io/gorm"
)

// Supplier represents a goods supplier
type Supplier struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	ShopName      *string        `gorm:"size:255" json:"shop_name,omitempty"`
	AccountHolder *string        `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string        `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string        `gorm:"size:255" json:"bank_name,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

func (Supplier) SearchColumns() []string { return []string{"name", "email", "phone", "shop_name"} }
func (Supplier) FilterColumns() []string { return []string{"bank_name"} }
func (Supplier) ExportColumns() []string {
	return []string{"id", "name", "email", "phone", "shop_name", "bank_name", "account_number"}
}

func (s Supplier) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, apperror.Required("name"))
	}
	if s.Email != nil && *s.Email != "" && !strings.Contains(*s.Email, "@") {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	return errs
}
