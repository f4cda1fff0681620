package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Built-in role names
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User represents a dashboard user (admin, manager or cashier)
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Role represents a role in the RBAC system
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Permission represents a permission in the RBAC system
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// PrimaryRole returns the most privileged role name the user holds
func (u *User) PrimaryRole() string {
	for _, name := range []string{RoleAdmin, RoleManager, RoleCashier} {
		if u.HasRole(name) {
			return name
		}
	}
	return ""
}

// GetPermissions returns the sorted, de-duplicated permission names of the user
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			seen[permission.Name] = true
		}
	}

	result := make([]string, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}

// Permission names checked by the HTTP layer
const (
	PermViewDashboard   = "view-dashboard"
	PermProcessSales    = "process-sales"
	PermViewSales       = "view-sales"
	PermManageProducts  = "manage-products"
	PermManageInventory = "manage-inventory"
	PermManageCatalog   = "manage-catalog"
	PermManageSuppliers = "manage-suppliers"
	PermManageFinance   = "manage-finance"
	PermManageEmployees = "manage-employees"
	PermViewReports     = "view-reports"
	PermManageBackups   = "manage-backups"
	PermManageUsers     = "manage-users"
)

// RolePermissions maps each built-in role to the permissions it grants
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermViewDashboard, PermProcessSales, PermViewSales, PermManageProducts,
		PermManageInventory, PermManageCatalog, PermManageSuppliers, PermManageFinance,
		PermManageEmployees, PermViewReports, PermManageBackups, PermManageUsers,
	},
	RoleManager: {
		PermViewDashboard, PermProcessSales, PermViewSales, PermManageProducts,
		PermManageInventory, PermManageCatalog, PermManageSuppliers, PermManageFinance,
		PermManageEmployees, PermViewReports,
	},
	RoleCashier: {
		PermViewDashboard, PermProcessSales, PermViewSales,
	},
}
