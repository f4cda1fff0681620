package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/application/report"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
)

var reportDimensions = []string{
	report.FilterProduct,
	report.FilterCategory,
	report.FilterEmployee,
	report.FilterCashier,
	report.FilterPayment,
	report.FilterStatus,
}

// ReportHandler handles the report catalog and exports
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// criteria reads the date range, search and any dimension filters
// (?payment=Cash&employee=Ada) from the query string.
func criteria(c *gin.Context) (report.Criteria, request.ReportFilterRequest, bool) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return report.Criteria{}, filter, false
	}

	crit := report.Criteria{
		From:       parseDate(filter.StartDate),
		To:         parseDate(filter.EndDate),
		Search:     filter.Search,
		Dimensions: map[string]string{},
	}
	for _, dim := range reportDimensions {
		if v := c.Query(dim); v != "" {
			crit.Dimensions[dim] = v
		}
	}
	return crit, filter, true
}

// List returns the report catalog
func (h *ReportHandler) List(c *gin.Context) {
	response.OK(c, "Reports retrieved successfully", h.reportService.Definitions())
}

// Run returns one page of a report with its summary
func (h *ReportHandler) Run(c *gin.Context) {
	crit, filter, ok := criteria(c)
	if !ok {
		return
	}

	table, err := h.reportService.Run(c.Request.Context(), c.Param("id"), crit, pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", table)
}

// Export downloads every matching row of a report in ?format=
func (h *ReportHandler) Export(c *gin.Context) {
	crit, filter, ok := criteria(c)
	if !ok {
		return
	}

	ds, err := h.reportService.Dataset(c.Request.Context(), c.Param("id"), crit)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exportService.Export(ds, filter.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

// ExportAll downloads every report as a zip archive
func (h *ReportHandler) ExportAll(c *gin.Context) {
	crit, _, ok := criteria(c)
	if !ok {
		return
	}

	sets, err := h.reportService.Datasets(c.Request.Context(), crit)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exportService.Archive(sets)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
