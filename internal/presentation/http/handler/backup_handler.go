package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const maxBackupSize = 50 << 20

// BackupHandler handles backup downloads and restores
type BackupHandler struct {
	backupService *service.BackupService
	log           *zap.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService, log *zap.Logger) *BackupHandler {
	return &BackupHandler{backupService: backupService, log: log}
}

// Tables lists the tables that can be backed up
func (h *BackupHandler) Tables(c *gin.Context) {
	response.OK(c, "Backup tables retrieved successfully", service.BackupTables)
}

// Export downloads a JSON backup of the ?tables= given, or of every table
func (h *BackupHandler) Export(c *gin.Context) {
	var req request.BackupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	doc, err := h.backupService.Export(c.Request.Context(), req.Tables)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		h.log.Error("failed to encode backup", zap.Error(err))
		response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to encode backup")
		return
	}

	response.Attachment(c, "backup_"+doc.ExportedAt.Format(dateLayout)+".json", "application/json", data)
}

// Restore loads an uploaded backup (form field "file", or the raw body)
func (h *BackupHandler) Restore(c *gin.Context) {
	var src io.Reader = c.Request.Body
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			response.BadRequest(c, "Could not read file")
			return
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(io.LimitReader(src, maxBackupSize))
	if err != nil || len(data) == 0 {
		response.BadRequest(c, "Backup file is required")
		return
	}

	result := h.backupService.Restore(c.Request.Context(), data)
	h.log.Info("backup restored", zap.Int("restored", result.Restored), zap.Int("skipped", result.Skipped))

	response.OK(c, "Backup restored", result)
}
