package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"gorm.io/gorm"
)

const importBatchSize = 100

// associations are managed through their own CRUD endpoints
var productAssociations = []string{"Category", "Unit", "Variants"}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func withCatalog(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Unit")
}

func lowStock(db *gorm.DB) *gorm.DB {
	return db.Where("quantity <= quantity_alert")
}

// findProduct returns nil, nil when nothing matches.
func (r *productRepository) findProduct(ctx context.Context, scope func(*gorm.DB) *gorm.DB, column string, value any) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Scopes(scope).Where(column+" = ?", value).Take(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit(productAssociations...).Create(product).Error
}

// CreateBatch inserts an import in one transaction so a bad row leaves the
// catalog untouched.
func (r *productRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(productAssociations...).CreateInBatches(&products, importBatchSize).Error
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.findProduct(ctx, func(db *gorm.DB) *gorm.DB {
		return withCatalog(db).Preload("Variants")
	}, "id", id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.findProduct(ctx, withCatalog, "slug", slug)
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.findProduct(ctx, func(db *gorm.DB) *gorm.DB { return db }, "code", code)
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit(productAssociations...).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(SearchScope(params.Search, "name", "code"))
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.UnitID != nil {
		query = query.Where("unit_id = ?", *params.UnitID)
	}
	if params.LowStock {
		query = query.Scopes(lowStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	err := query.
		Scopes(
			withCatalog,
			SortScope(params.SortBy, params.SortOrder, "name", "code", "quantity", "selling_price"),
			PaginateScope(params.Pagination),
		).
		Find(&products).Error
	return products, total, err
}

// GetLowStock lists products at or below their alert level, emptiest first.
func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(lowStock, withCatalog).
		Order("quantity ASC, name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Scopes(lowStock).Count(&count).Error
	return count, err
}
