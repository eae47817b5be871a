package handlers

import (
	"context"
	"log"
	"time"

	"dispatch-control-api/app/dto"
	businessflow "dispatch-control-api/business_flow"

	"github.com/gofiber/fiber/v3"
)

// ReportHandlerInterface defines the contract for report handlers
type ReportHandlerInterface interface {
	DailyReport(c fiber.Ctx) error
	ExportExcel(c fiber.Ctx) error
}

// ReportHandler handles daily report HTTP requests
type ReportHandler struct {
	flow businessflow.ReportFlow
}

// NewReportHandler creates a new report handler
func NewReportHandler(flow businessflow.ReportFlow) ReportHandlerInterface {
	return &ReportHandler{flow: flow}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// DailyReport returns the aggregate of one calendar date's dispatches grouped by messenger
// @Summary Daily Report
// @Tags Reports
// @Produce json
// @Param date query string false "Calendar date YYYY-MM-DD (default: today UTC)"
// @Success 200 {object} dto.APIResponse{data=dto.DailyReportResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/reports/daily [get]
func (h *ReportHandler) DailyReport(c fiber.Ctx) error {
	date := c.Query("date")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.DailyReport(h.createRequestContext(c, "/api/reports/daily"), date, metadata)
	if err != nil {
		if businessflow.IsInvalidReportDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Report date must be in YYYY-MM-DD format", "INVALID_REPORT_DATE", nil)
		}
		log.Println("Daily report failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build daily report", "DAILY_REPORT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Daily report generated successfully", result)
}

// ExportExcel returns the daily aggregate as a downloadable xlsx workbook
// @Summary Export Daily Report (Excel)
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Calendar date YYYY-MM-DD (default: today UTC)"
// @Success 200 {string} string "Excel file"
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/reports/export-excel [get]
func (h *ReportHandler) ExportExcel(c fiber.Ctx) error {
	date := c.Query("date")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	filename, data, err := h.flow.ExportDailyReportExcel(h.createRequestContext(c, "/api/reports/export-excel"), date, metadata)
	if err != nil {
		if businessflow.IsInvalidReportDate(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Report date must be in YYYY-MM-DD format", "INVALID_REPORT_DATE", nil)
		}
		log.Println("Report Excel export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate Excel", "EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

func (h *ReportHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 60*time.Second)
}
