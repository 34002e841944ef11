package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/payflow-importer/internal/admin/service"
)

// RunHandler serves the import run history
type RunHandler struct {
	runs   service.RunService
	logger *slog.Logger
}

// NewRunHandler creates a run history handler
func NewRunHandler(logger *slog.Logger, runs service.RunService) *RunHandler {
	return &RunHandler{
		runs:   runs,
		logger: logger,
	}
}

// List handles GET /api/v1/runs
func (h *RunHandler) List(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			RespondBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.runs.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list run history", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, records)
}
