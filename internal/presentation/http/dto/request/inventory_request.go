package request

import "github.com/google/uuid"

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=add subtract"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Reason    string    `json:"reason" binding:"max=255"`
}

// TransferStockRequest represents moving units between locations
type TransferStockRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	FromLocation string    `json:"from_location" binding:"required,max=255"`
	ToLocation   string    `json:"to_location" binding:"required,max=255"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
}

// StockFilterRequest represents stock movement list filters
type StockFilterRequest struct {
	ProductID string `form:"product_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
