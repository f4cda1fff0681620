package database

import (
	"fmt"
	"strings"

	"github.com/sangkips/retailhub-api/internal/config"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		// Access control
		&entity.Permission{},
		&entity.Role{},
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},
		&entity.Variant{},
		&entity.Supplier{},

		// Sales ledger
		&entity.Sale{},
		&entity.SaleItem{},

		// Inventory movements
		&entity.StockAdjustment{},
		&entity.StockTransfer{},

		// People and money
		&entity.Employee{},
		&entity.Payroll{},
		&entity.BankAccount{},
		&entity.Subscription{},

		// System
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the built-in permissions and roles, and the admin
// account when credentials are configured. It is safe to run on every start.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")

	byName := make(map[string]entity.Permission)
	for _, names := range entity.RolePermissions {
		for _, name := range names {
			if _, ok := byName[name]; ok {
				continue
			}
			perm := entity.Permission{Name: name}
			if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
			byName[name] = perm
		}
	}

	for roleName, names := range entity.RolePermissions {
		role := entity.Role{Name: roleName}
		if err := db.Where(entity.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", roleName, err)
		}
		perms := make([]entity.Permission, 0, len(names))
		for _, name := range names {
			perms = append(perms, byName[name])
		}
		if err := db.Model(&role).Association("Permissions").Replace(perms); err != nil {
			return fmt.Errorf("sync permissions for %s: %w", roleName, err)
		}
	}

	if admin.Email == "" || admin.Password == "" {
		log.Info("default data seeding completed")
		return nil
	}

	email := strings.ToLower(admin.Email)
	var existing entity.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info("admin user already exists", zap.String("email", email))
		return nil
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("load admin role: %w", err)
	}
	user := entity.User{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
		IsActive: true,
		Roles:    []entity.Role{adminRole},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("email", email))
	return nil
}
