package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aiabusehotline/hotline-core/internal/dto"
	"github.com/aiabusehotline/hotline-core/internal/models"
	"github.com/aiabusehotline/hotline-core/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) StatsSummary(c *fiber.Ctx) error {
	stats, err := h.adminService.StatsSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to aggregate stats",
		})
	}
	return c.JSON(stats)
}

// ListReports supports filtering by origin, spam_status and
// severity_bucket. Unknown filter values simply match nothing.
func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	reports, err := h.adminService.ListReports(services.ReportFilter{
		Origin:         models.Origin(c.Query("origin", "")),
		SpamStatus:     models.SpamStatus(c.Query("spam_status", "")),
		SeverityBucket: models.SeverityBucket(c.Query("severity_bucket", "")),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Count:   len(reports),
	})
}

func (h *AdminHandler) ListAgentClients(c *fiber.Ctx) error {
	clients, err := h.adminService.ListAgentClients()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch agent clients",
		})
	}
	return c.JSON(dto.AgentClientListResponse{Clients: clients})
}

func (h *AdminHandler) CreateAgentClient(c *fiber.Ctx) error {
	var req dto.AgentClientCreateRequest
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

	resp, err := h.adminService.CreateAgentClient(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create agent client",
		})
	}

	return c.JSON(resp)
}

// GetAgentByKeyHash resolves an API key digest for the agent gateway.
// It deliberately sits outside the admin token guard.
func (h *AdminHandler) GetAgentByKeyHash(c *fiber.Ctx) error {
	client, err := h.adminService.FindAgentClientByKeyHash(c.Params("key_hash"))
	if err != nil {
		if errors.Is(err, services.ErrAgentClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Agent not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to look up agent client",
		})
	}
	return c.JSON(client)
}

func (h *AdminHandler) AgentStats(c *fiber.Ctx) error {
	stats, err := h.adminService.AgentClientStats(c.Params("client_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to aggregate agent stats",
		})
	}
	return c.JSON(stats)
}

// CreatePartnerLead takes submissions from the public integration form,
// so it also sits outside the admin token guard.
func (h *AdminHandler) CreatePartnerLead(c *fiber.Ctx) error {
	var req dto.PartnerLeadRequest
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

	resp, err := h.adminService.CreatePartnerLead(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create partner lead",
		})
	}

	return c.JSON(resp)
}

func (h *AdminHandler) ListPartnerLeads(c *fiber.Ctx) error {
	leads, err := h.adminService.ListPartnerLeads()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch partner leads",
		})
	}
	return c.JSON(dto.PartnerLeadListResponse{Leads: leads})
}
