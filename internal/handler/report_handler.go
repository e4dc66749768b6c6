package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finmov/internal/service"
)

// ReportHandler handles the report endpoint.
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Get godoc
// @Summary Get the financial report
// @Description Balance, totals and month-keyed breakdown recomputed from all movements (admin only)
// @Tags reports
// @Produce json
// @Success 200 {object} report.Report
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Get(c echo.Context) error {
	rep, err := h.svc.Generate(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
