package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/retailhub-api/pkg/apperror"
)

// PrinterHandler drives the thermal receipt printer.
type PrinterHandler struct {
	printerService *service.PrinterService
}

func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	replyReceipt(c, receipt, err, "Test page sent to printer")
}

// PrintReceipt reprints the receipt of a committed sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), uuid.MustParse(req.SaleID))
	replyReceipt(c, receipt, err, "Receipt printed successfully")
}

// replyReceipt returns the rendered receipt even when the printer is
// unreachable so the till can show or re-send it. Errors raised before a
// receipt exists, such as an unknown sale, are reported as usual.
func replyReceipt(c *gin.Context, receipt *entity.Receipt, err error, okMessage string) {
	switch {
	case err == nil:
		response.OK(c, okMessage, gin.H{"receipt": receipt})
	case receipt != nil:
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": apperror.GetAppError(err).Message,
		})
	default:
		response.Error(c, err)
	}
}
