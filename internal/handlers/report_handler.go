package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aiabusehotline/hotline-core/internal/dto"
	"github.com/aiabusehotline/hotline-core/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateInternalReport ingests a distress report forwarded by an agent
// gateway. Classification failures degrade inside the service, so the
// only error paths left here are malformed input and a dead store.
func (h *ReportHandler) CreateInternalReport(c *fiber.Ctx) error {
	var req dto.InternalReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	resp, err := h.reportService.CreateAgentReport(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store report",
		})
	}

	return c.JSON(resp)
}

// CreateWebReport ingests a report submitted by a human through the
// public web form.
func (h *ReportHandler) CreateWebReport(c *fiber.Ctx) error {
	var req dto.WebReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	resp, err := h.reportService.CreateWebReport(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store report",
		})
	}

	return c.JSON(resp)
}
