package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankAccount is a store bank or cash account
type BankAccount struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountName   string          `gorm:"size:255;not null" json:"account_name"`
	AccountNumber string          `gorm:"size:100;uniqueIndex;not null" json:"account_number"`
	BankName      string          `gorm:"size:255" json:"bank_name"`
	Balance       decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"balance"`
	Status        string          `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bank account
func (b *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankAccount model
func (BankAccount) TableName() string {
	return "bank_accounts"
}

func (BankAccount) SearchColumns() []string {
	return []string{"account_name", "account_number", "bank_name"}
}
func (BankAccount) FilterColumns() []string { return []string{"status", "bank_name"} }
func (BankAccount) ExportColumns() []string {
	return []string{"id", "account_name", "account_number", "bank_name", "balance", "status"}
}

// Normalize defaults the status
func (b *BankAccount) Normalize() {
	if b.Status == "" {
		b.Status = "active"
	}
}

func (b BankAccount) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(b.AccountName) == "" {
		errs = append(errs, apperror.Required("account_name"))
	}
	if strings.TrimSpace(b.AccountNumber) == "" {
		errs = append(errs, apperror.Required("account_number"))
	}
	return errs
}

// Billing cycles accepted for subscriptions
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Subscription is a recurring plan the store is billed for
type Subscription struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Plan          string          `gorm:"size:255;not null" json:"plan"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	BillingCycle  string          `gorm:"size:20;not null;default:'monthly'" json:"billing_cycle"`
	Status        string          `gorm:"size:20;default:'active';index" json:"status"`
	NextBillingAt *time.Time      `json:"next_billing_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new subscription
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

func (Subscription) SearchColumns() []string { return []string{"plan"} }
func (Subscription) FilterColumns() []string { return []string{"status", "billing_cycle"} }
func (Subscription) ExportColumns() []string {
	return []string{"id", "plan", "amount", "billing_cycle", "status", "next_billing_at"}
}

// Normalize defaults the cycle and status
func (s *Subscription) Normalize() {
	s.BillingCycle = strings.ToLower(strings.TrimSpace(s.BillingCycle))
	if s.BillingCycle == "" {
		s.BillingCycle = BillingMonthly
	}
	if s.Status == "" {
		s.Status = "active"
	}
}

func (s Subscription) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(s.Plan) == "" {
		errs = append(errs, apperror.Required("plan"))
	}
	if s.Amount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "amount", Message: "amount cannot be negative"})
	}
	if s.BillingCycle != BillingMonthly && s.BillingCycle != BillingYearly {
		errs = append(errs, apperror.FieldError{Field: "billing_cycle", Message: "billing_cycle must be monthly or yearly"})
	}
	return errs
}

// NextBilling returns the billing date that follows from
func (s Subscription) NextBilling(from time.Time) time.Time {
	if s.BillingCycle == BillingYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
