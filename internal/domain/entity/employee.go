package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee represents a store employee
type Employee struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Email     *string         `gorm:"size:255" json:"email,omitempty"`
	Phone     *string         `gorm:"size:50" json:"phone,omitempty"`
	Position  string          `gorm:"size:100" json:"position"`
	Salary    decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"salary"`
	Status    string          `gorm:"size:20;default:'active';index" json:"status"`
	HiredAt   *time.Time      `json:"hired_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

func (Employee) SearchColumns() []string { return []string{"name", "email", "phone", "position"} }
func (Employee) FilterColumns() []string { return []string{"status", "position"} }
func (Employee) ExportColumns() []string {
	return []string{"id", "name", "email", "phone", "position", "salary", "status"}
}

// Normalize defaults the status
func (e *Employee) Normalize() {
	if e.Status == "" {
		e.Status = "active"
	}
}

func (e Employee) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, apperror.Required("name"))
	}
	if e.Salary.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "salary", Message: "salary cannot be negative"})
	}
	return errs
}

// Payroll is one pay run for an employee
type Payroll struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Period     string          `gorm:"size:7;not null;index" json:"period"` // YYYY-MM
	Gross      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"gross"`
	Deductions decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"deductions"`
	Net        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"net"`
	Status     string          `gorm:"size:20;default:'pending';index" json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payroll
func (p *Payroll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payroll model
func (Payroll) TableName() string {
	return "payrolls"
}

func (Payroll) SearchColumns() []string { return []string{"period", "status"} }
func (Payroll) FilterColumns() []string { return []string{"status", "employee_id", "period"} }
func (Payroll) ExportColumns() []string {
	return []string{"id", "employee_id", "period", "gross", "deductions", "net", "status", "paid_at"}
}

// Normalize computes net pay and defaults the status
func (p *Payroll) Normalize() {
	p.Net = p.Gross.Sub(p.Deductions)
	if p.Status == "" {
		p.Status = "pending"
	}
}

func (p Payroll) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if p.EmployeeID == uuid.Nil {
		errs = append(errs, apperror.Required("employee_id"))
	}
	if _, err := time.Parse("2006-01", p.Period); err != nil {
		errs = append(errs, apperror.FieldError{Field: "period", Message: "period must be formatted YYYY-MM"})
	}
	if p.Gross.IsNegative() || p.Deductions.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "gross", Message: "amounts cannot be negative"})
	}
	if p.Deductions.GreaterThan(p.Gross) {
		errs = append(errs, apperror.FieldError{Field: "deductions", Message: "deductions cannot exceed gross pay"})
	}
	return errs
}
