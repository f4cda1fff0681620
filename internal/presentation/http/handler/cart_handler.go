package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// CartHandler handles the caller's point-of-sale cart
type CartHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

type cartPayload struct {
	Lines    []entity.CartLine `json:"lines"`
	Totals   service.Totals    `json:"totals"`
	TaxLabel string            `json:"tax_label"`
}

func (h *CartHandler) payload(cart *entity.Cart) cartPayload {
	return cartPayload{
		Lines:    cart.Lines,
		Totals:   h.checkoutService.ComputeTotals(cart, decimal.Zero),
		TaxLabel: h.checkoutService.TaxLabel(),
	}
}

// Get returns the cart with its totals
func (h *CartHandler) Get(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", h.payload(cart))
}

// Add puts one unit of a product in the cart
func (h *CartHandler) Add(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), owner, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", h.payload(cart))
}

func (h *CartHandler) lineAction(c *gin.Context, message string, fn func(owner, productID uuid.UUID) (*entity.Cart, error)) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	cart, err := fn(owner, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, h.payload(cart))
}

// Increment adds one to a line
func (h *CartHandler) Increment(c *gin.Context) {
	h.lineAction(c, "Cart updated", func(owner, productID uuid.UUID) (*entity.Cart, error) {
		return h.cartService.IncrementLine(c.Request.Context(), owner, productID)
	})
}

// Decrement removes one from a line, dropping it at zero
func (h *CartHandler) Decrement(c *gin.Context) {
	h.lineAction(c, "Cart updated", func(owner, productID uuid.UUID) (*entity.Cart, error) {
		return h.cartService.DecrementLine(c.Request.Context(), owner, productID)
	})
}

// Remove drops a line from the cart
func (h *CartHandler) Remove(c *gin.Context) {
	h.lineAction(c, "Item removed from cart", func(owner, productID uuid.UUID) (*entity.Cart, error) {
		return h.cartService.RemoveLine(c.Request.Context(), owner, productID)
	})
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", h.payload(entity.NewCart(nil)))
}
