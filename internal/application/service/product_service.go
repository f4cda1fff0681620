package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/money"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CRUDRepository[entity.Category]
	unitRepo     repository.CRUDRepository[entity.Unit]
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CRUDRepository[entity.Category],
	unitRepo repository.CRUDRepository[entity.Unit],
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          string
	Code          string
	Quantity      int
	QuantityAlert int
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	Notes         *string
}

func validateProduct(name string, quantity, alert int, buying, selling decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, apperror.Required("name"))
	}
	if quantity < 0 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if alert < 0 {
		errs = append(errs, apperror.FieldError{Field: "quantity_alert", Message: "quantity_alert cannot be negative"})
	}
	if buying.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "buying_price", Message: "buying_price cannot be negative"})
	}
	if selling.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "selling_price", Message: "selling_price cannot be negative"})
	}
	return errs
}

// uniqueSlug derives a slug from name, suffixing it when already taken
func (s *ProductService) uniqueSlug(ctx context.Context, name string, self uuid.UUID) (string, error) {
	slug := utils.Slugify(name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != self {
		slug += "-" + strings.ToLower(uuid.NewString()[:8])
	}
	return slug, nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if errs := validateProduct(input.Name, input.Quantity, input.QuantityAlert, input.BuyingPrice, input.SellingPrice); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	slug, err := s.uniqueSlug(ctx, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		CategoryID:    input.CategoryID,
		UnitID:        input.UnitID,
		Name:          strings.TrimSpace(input.Name),
		Slug:          slug,
		Code:          code,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		BuyingPrice:   money.Round2(input.BuyingPrice),
		SellingPrice:  money.Round2(input.SellingPrice),
		Notes:         input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	ProductSlug   string
	CategoryID    *uuid.UUID
	UnitID        *uuid.UUID
	Name          *string
	Code          *string
	Quantity      *int
	QuantityAlert *int
	BuyingPrice   *decimal.Decimal
	SellingPrice  *decimal.Decimal
	Notes         *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ProductSlug)
	if err != nil {
		return nil, err
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != product.Code {
		existingProduct, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
		product.Category = nil
	}
	if input.UnitID != nil {
		product.UnitID = input.UnitID
		product.Unit = nil
	}
	if input.Name != nil && *input.Name != product.Name {
		slug, err := s.uniqueSlug(ctx, *input.Name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Name = strings.TrimSpace(*input.Name)
		product.Slug = slug
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = money.Round2(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		product.SellingPrice = money.Round2(*input.SellingPrice)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if errs := validateProduct(product.Name, product.Quantity, product.QuantityAlert, product.BuyingPrice, product.SellingPrice); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.GetProduct(ctx, slug)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their alert quantity
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// Import columns, in template order
var productImportColumns = []string{
	"Name", "Code", "Category", "Unit", "Quantity", "Quantity Alert", "Buying Price", "Selling Price", "Notes",
}

// ImportTemplate is an empty product sheet users fill in for import
func (s *ProductService) ImportTemplate() export.Dataset {
	return export.Dataset{Name: "Products Import", Columns: productImportColumns}
}

// Dataset renders products matching params for export
func (s *ProductService) Dataset(ctx context.Context, params *repository.ProductFilterParams) (export.Dataset, error) {
	all := *params
	all.Pagination = &pagination.PaginationParams{Page: 1, PerPage: pagination.MaxPerPage}

	ds := export.Dataset{Name: "Products", Columns: productImportColumns, Rows: []export.Row{}}
	for {
		products, total, err := s.productRepo.List(ctx, &all)
		if err != nil {
			return export.Dataset{}, err
		}
		for _, p := range products {
			row := export.Row{
				"Name":           p.Name,
				"Code":           p.Code,
				"Category":       p.CategoryName(),
				"Quantity":       strconv.Itoa(p.Quantity),
				"Quantity Alert": strconv.Itoa(p.QuantityAlert),
				"Buying Price":   p.BuyingPrice.StringFixed(2),
				"Selling Price":  p.SellingPrice.StringFixed(2),
			}
			if p.Unit != nil {
				row["Unit"] = p.Unit.Name
			}
			if p.Notes != nil {
				row["Notes"] = *p.Notes
			}
			ds.Rows = append(ds.Rows, row)
		}
		if int64(len(ds.Rows)) >= total || len(products) == 0 {
			return ds, nil
		}
		all.Pagination.Page++
	}
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name          string
	Code          string
	Quantity      int
	QuantityAlert int
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	Notes         string
	CategoryName  string
	UnitName      string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseImport reads product rows from an XLSX workbook. Headers are matched
// case-insensitively; underscores and spaces are equivalent.
func (s *ProductService) ParseImport(data []byte) ([]ImportProductRow, error) {
	ds, err := export.ReadSpreadsheet(data)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet: " + err.Error())
	}

	header := make(map[string]string, len(ds.Columns))
	for _, c := range ds.Columns {
		header[strings.ToLower(utils.Titleize(strings.TrimSpace(c)))] = c
	}
	cell := func(r export.Row, name string) string {
		return strings.TrimSpace(r[header[strings.ToLower(name)]])
	}
	if _, ok := header["name"]; !ok {
		return nil, apperror.NewBadRequestError("Spreadsheet must have a Name column")
	}

	rows := make([]ImportProductRow, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		qty, _ := strconv.Atoi(cell(r, "Quantity"))
		alert, _ := strconv.Atoi(cell(r, "Quantity Alert"))
		rows = append(rows, ImportProductRow{
			Name:          cell(r, "Name"),
			Code:          cell(r, "Code"),
			Quantity:      qty,
			QuantityAlert: alert,
			BuyingPrice:   money.Parse(cell(r, "Buying Price")),
			SellingPrice:  money.Parse(cell(r, "Selling Price")),
			Notes:         cell(r, "Notes"),
			CategoryName:  cell(r, "Category"),
			UnitName:      cell(r, "Unit"),
		})
	}
	return rows, nil
}

// ImportProducts validates and bulk-creates products from parsed import rows
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// Load categories and units for name-based matching
	categoryMap := make(map[string]*uuid.UUID)
	categories, err := s.categoryRepo.All(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categoryMap[strings.ToLower(categories[i].Name)] = &categories[i].ID
	}

	unitMap := make(map[string]*uuid.UUID)
	units, err := s.unitRepo.All(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range units {
		unitMap[strings.ToLower(units[i].Name)] = &units[i].ID
	}

	// Track codes seen in this import batch to detect duplicates within the file
	seenCodes := make(map[string]int)

	var validProducts []entity.Product

	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header

		if errs := validateProduct(row.Name, row.Quantity, row.QuantityAlert, row.BuyingPrice, row.SellingPrice); len(errs) > 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: errs[0].Field, Message: errs[0].Message})
			continue
		}

		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateProductCode()
		}

		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		existingProduct, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existingProduct != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Product code '%s' already exists", code),
			})
			continue
		}

		seenCodes[code] = rowNum

		product := entity.Product{
			CategoryID:    categoryMap[strings.ToLower(row.CategoryName)],
			UnitID:        unitMap[strings.ToLower(row.UnitName)],
			Name:          strings.TrimSpace(row.Name),
			Slug:          utils.Slugify(row.Name) + "-" + strings.ToLower(uuid.NewString()[:8]),
			Code:          code,
			Quantity:      row.Quantity,
			QuantityAlert: row.QuantityAlert,
			BuyingPrice:   money.Round2(row.BuyingPrice),
			SellingPrice:  money.Round2(row.SellingPrice),
		}
		if row.Notes != "" {
			notes := row.Notes
			product.Notes = &notes
		}

		validProducts = append(validProducts, product)
	}

	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.Wrap(http.StatusInternalServerError, "Failed to import products", err)
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
