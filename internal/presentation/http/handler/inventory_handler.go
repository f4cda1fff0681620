package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock adjustments and transfers
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func stockFilter(c *gin.Context) (*repository.StockFilterParams, bool) {
	var filter request.StockFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}

	params := &repository.StockFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		StartDate:  parseDate(filter.StartDate),
		EndDate:    parseDate(filter.EndDate),
	}
	if productID, err := uuid.Parse(filter.ProductID); err == nil {
		params.ProductID = &productID
	}
	return params, true
}

// Adjust records a manual stock change
func (h *InventoryHandler) Adjust(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}
	adjType, err := enum.ParseAdjustmentType(req.Type)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.inventoryService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID: req.ProductID,
		UserID:    userID,
		Type:      adjType,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjusted successfully", adjustment)
}

// Transfer records units moving between locations
func (h *InventoryHandler) Transfer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.TransferStockRequest
	if !bindJSON(c, &req) {
		return
	}

	transfer, err := h.inventoryService.TransferStock(c.Request.Context(), &service.TransferStockInput{
		ProductID:    req.ProductID,
		UserID:       userID,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Quantity:     req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock transferred successfully", transfer)
}

// ListAdjustments lists stock adjustments
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	params, ok := stockFilter(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.ListAdjustments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock adjustments retrieved successfully", result)
}

// ListTransfers lists stock transfers
func (h *InventoryHandler) ListTransfers(c *gin.Context) {
	params, ok := stockFilter(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock transfers retrieved successfully", result)
}
