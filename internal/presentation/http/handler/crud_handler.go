package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
)

// CRUDHandler exposes one management table over REST
type CRUDHandler[T repository.Resource] struct {
	svc           *service.CRUDService[T]
	exportService *service.ExportService
}

// NewCRUDHandler creates a handler for svc
func NewCRUDHandler[T repository.Resource](svc *service.CRUDService[T], exportService *service.ExportService) *CRUDHandler[T] {
	return &CRUDHandler[T]{svc: svc, exportService: exportService}
}

// Register mounts list/get/create/update/delete and /export on rg
func (h *CRUDHandler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/export", h.Export)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *CRUDHandler[T]) listParams(c *gin.Context) *repository.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ListParams{
		Pagination: pageParams(page, perPage),
		Search:     c.Query("search"),
		Filters:    map[string]string{},
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	var zero T
	for _, col := range zero.FilterColumns() {
		if v := c.Query(col); v != "" {
			params.Filters[col] = v
		}
	}
	return params
}

// List handles listing items
func (h *CRUDHandler[T]) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), h.listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, h.svc.Name()+" list retrieved successfully", result)
}

// Get handles getting an item by ID
func (h *CRUDHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.svc.Name()+" retrieved successfully", item)
}

// Create handles creating an item
func (h *CRUDHandler[T]) Create(c *gin.Context) {
	item := new(T)
	if !bindJSON(c, item) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, h.svc.Name()+" created successfully", created)
}

// Update handles updating an item
func (h *CRUDHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	changes := new(T)
	if !bindJSON(c, changes) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.svc.Name()+" updated successfully", updated)
}

// Delete handles deleting an item
func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, h.svc.Name()+" deleted successfully", nil)
}

// Export renders the filtered table in ?format=
func (h *CRUDHandler[T]) Export(c *gin.Context) {
	ds, err := h.svc.Dataset(c.Request.Context(), h.listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exportService.Export(ds, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
