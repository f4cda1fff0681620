package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID        *uuid.UUID      `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Slug          string          `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Code          string          `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Quantity      int             `gorm:"default:0" json:"quantity"`
	QuantityAlert int             `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"buying_price"`
	SellingPrice  decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"selling_price"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether quantity has reached the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.QuantityAlert
}

// CategoryName returns the loaded category name or an empty string
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CartProduct snapshots the fields a cart line needs
func (p *Product) CartProduct() CartProduct {
	return CartProduct{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.SellingPrice,
		Category: p.CategoryName(),
	}
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Normalize derives the slug from the name
func (c *Category) Normalize() {
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

func (Category) SearchColumns() []string { return []string{"name", "slug"} }
func (Category) FilterColumns() []string { return nil }
func (Category) ExportColumns() []string { return []string{"id", "name", "slug", "created_at"} }

func (c Category) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if c.Name == "" {
		errs = append(errs, apperror.Required("name"))
	}
	return errs
}

// Unit represents a unit of measurement
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Normalize derives the slug from the name
func (u *Unit) Normalize() {
	if u.Slug == "" {
		u.Slug = utils.Slugify(u.Name)
	}
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}

func (Unit) SearchColumns() []string { return []string{"name", "short_code"} }
func (Unit) FilterColumns() []string { return nil }
func (Unit) ExportColumns() []string { return []string{"id", "name", "short_code", "created_at"} }

func (u Unit) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if u.Name == "" {
		errs = append(errs, apperror.Required("name"))
	}
	return errs
}

// Variant is a sellable variation of a product (size, colour, pack)
type Variant struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	SKU        string          `gorm:"size:120;uniqueIndex;not null" json:"sku"`
	PriceDelta decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"price_delta"`
	Quantity   int             `gorm:"default:0" json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new variant
func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Normalize generates a SKU when none was given
func (v *Variant) Normalize() {
	if v.SKU == "" {
		v.SKU = utils.GenerateSKU(utils.GenerateProductCode(), v.Name)
	}
}

// TableName returns the table name for the Variant model
func (Variant) TableName() string {
	return "variants"
}

func (Variant) SearchColumns() []string { return []string{"name", "sku"} }
func (Variant) FilterColumns() []string { return []string{"product_id"} }
func (Variant) ExportColumns() []string {
	return []string{"id", "product_id", "name", "sku", "price_delta", "quantity"}
}

func (v Variant) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	if v.ProductID == uuid.Nil {
		errs = append(errs, apperror.Required("product_id"))
	}
	if v.Name == "" {
		errs = append(errs, apperror.Required("name"))
	}
	if v.Quantity < 0 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	return errs
}
