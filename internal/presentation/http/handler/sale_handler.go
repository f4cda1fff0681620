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

// SaleHandler handles checkout and the sales ledger
type SaleHandler struct {
	checkoutService *service.CheckoutService
	saleService     *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(checkoutService *service.CheckoutService, saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{checkoutService: checkoutService, saleService: saleService}
}

// Checkout settles the caller's cart as a completed sale
func (h *SaleHandler) Checkout(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.checkoutService.CompleteCheckout(c.Request.Context(), &service.CheckoutInput{
		Owner:       owner,
		CashierName: GetUserName(c),
		Method:      enum.ParsePaymentMethod(req.PaymentMethod),
		Fields: service.PaymentFields{
			CardNumber: req.CardNumber,
			Expiry:     req.Expiry,
			CVV:        req.CVV,
			Phone:      req.Phone,
		},
		Discount:     req.Discount,
		CashReceived: req.CashReceived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", result)
}

// List handles listing committed sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination:    pageParams(filter.Page, filter.PerPage),
		Search:        filter.Search,
		PaymentMethod: enum.ParsePaymentMethod(filter.PaymentMethod),
		StartDate:     parseDate(filter.StartDate),
		EndDate:       parseDate(filter.EndDate),
	}
	if cashierID, err := uuid.Parse(filter.CashierID); err == nil {
		params.CashierID = &cashierID
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByInvoice handles looking a sale up by invoice number
func (h *SaleHandler) GetByInvoice(c *gin.Context) {
	sale, err := h.saleService.GetSaleByInvoice(c.Request.Context(), c.Param("invoice"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}
