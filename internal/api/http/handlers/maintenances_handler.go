package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// MaintenancesHandler manages work order endpoints.
type MaintenancesHandler struct {
	service *service.MaintenanceService
}

// NewMaintenancesHandler constructs handler.
func NewMaintenancesHandler(maintenanceService *service.MaintenanceService) *MaintenancesHandler {
	return &MaintenancesHandler{service: maintenanceService}
}

// Create POST /maintenances.
func (h *MaintenancesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.CreateWorkOrder(c.Context(), principal.User.ID, service.MaintenanceCreateInput{
		Description:    req.Description,
		Priority:       req.Priority,
		EquipmentID:    req.EquipmentID,
		TypeID:         req.TypeID,
		ResponsibleID:  req.ResponsibleID,
		RequiresReview: req.RequiresReview,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// CreateScheduled POST /maintenances/scheduled.
func (h *MaintenancesHandler) CreateScheduled(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateScheduledMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.CreateScheduledWorkOrder(c.Context(), principal.User.ID, service.ScheduledCreateInput{
		MaintenanceCreateInput: service.MaintenanceCreateInput{
			Description:    req.Description,
			Priority:       req.Priority,
			EquipmentID:    req.EquipmentID,
			TypeID:         req.TypeID,
			ResponsibleID:  req.ResponsibleID,
			RequiresReview: req.RequiresReview,
		},
		FrequencyKind:   req.FrequencyKind,
		FrequencyEvery:  req.FrequencyEvery,
		NextMaintenance: req.NextMaintenance,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// List GET /maintenances. Supports requested_by and assigned_to filters.
func (h *MaintenancesHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var (
		orders []domain.MaintenanceWorkOrder
		err    error
	)
	switch {
	case strings.TrimSpace(c.Query("requested_by")) != "":
		orders, err = h.service.ListCreatedBy(c.Context(), c.Query("requested_by"), limit, offset)
	case strings.TrimSpace(c.Query("assigned_to")) != "":
		orders, err = h.service.ListAssignedTo(c.Context(), c.Query("assigned_to"), limit, offset)
	default:
		orders, err = h.service.ListAll(c.Context(), limit, offset)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaries(orders)})
}

// ListScheduled GET /maintenances/scheduled.
func (h *MaintenancesHandler) ListScheduled(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	orders, err := h.service.ListAllScheduled(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaries(orders)})
}

// Get GET /maintenances/:id.
func (h *MaintenancesHandler) Get(c *fiber.Ctx) error {
	order, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// GetScheduled GET /maintenances/scheduled/:id.
func (h *MaintenancesHandler) GetScheduled(c *fiber.Ctx) error {
	order, err := h.service.GetScheduledByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// Update PUT /maintenances/:id.
func (h *MaintenancesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.UpdateWorkOrder(c.Context(), principal.User.ID, c.Params("id"), updateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// UpdateScheduled PUT /maintenances/scheduled/:id.
func (h *MaintenancesHandler) UpdateScheduled(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.UpdateScheduledWorkOrder(c.Context(), principal.User.ID, c.Params("id"), updateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// ToggleStatus PATCH /maintenances/:id/status.
func (h *MaintenancesHandler) ToggleStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	order, err := h.service.ToggleStatus(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// Delete DELETE /maintenances/:id.
func (h *MaintenancesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	order, err := h.service.LogicalDelete(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// Review POST /maintenances/:id/review.
func (h *MaintenancesHandler) Review(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReviewMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.ReviewWorkOrder(c.Context(), principal.User.ID, c.Params("id"),
		service.ReviewDecision(strings.ToUpper(strings.TrimSpace(req.Decision))), req.RejectionReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaintenance(order)})
}

// Audit GET /maintenances/:id/audit.
func (h *MaintenancesHandler) Audit(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	entries, err := h.service.ListAudit(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromAuditEntry(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

func summaries(orders []domain.MaintenanceWorkOrder) []dto.MaintenanceSummary {
	items := make([]dto.MaintenanceSummary, 0, len(orders))
	for i := range orders {
		items = append(items, dto.FromMaintenance(&orders[i]))
	}
	return items
}

func updateInput(req dto.UpdateMaintenanceRequest) service.MaintenanceUpdateInput {
	return service.MaintenanceUpdateInput{
		Description:     req.Description,
		Priority:        req.Priority,
		EquipmentID:     req.EquipmentID,
		TypeID:          req.TypeID,
		ResponsibleID:   req.ResponsibleID,
		FrequencyKind:   req.FrequencyKind,
		FrequencyEvery:  req.FrequencyEvery,
		NextMaintenance: req.NextMaintenance,
	}
}

func parsePagination(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
