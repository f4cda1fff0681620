package request

// UpdateUserRequest changes a user's role or status
type UpdateUserRequest struct {
	Role     *string `json:"role" binding:"omitempty,oneof=admin manager cashier"`
	IsActive *bool   `json:"is_active"`
}

// UserFilterRequest represents user list filters
type UserFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
