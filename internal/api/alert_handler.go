package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"visaslots/internal/alerts"
	"visaslots/internal/domain"
	"visaslots/internal/validate"
)

// AlertHandler handles HTTP requests for alert operations.
type AlertHandler struct {
	service *alerts.Service
	logger  *slog.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(service *alerts.Service, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /alerts
// Returns one page of alerts matching the optional country and status filters.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	params := alerts.ListParams{
		Country: c.Query("country"),
		Status:  c.Query("status"),
	}

	// Non-numeric or non-positive pagination input is treated as absent;
	// the service falls back to the defaults.
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.Limit = l
		}
	}

	result, err := h.service.List(c.Context(), params)
	if err != nil {
		h.logger.Error("failed to list alerts", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Failed to fetch alerts")
	}

	return c.JSON(ListResponse{
		Data:       result.Alerts,
		Pagination: result.Pagination,
	})
}

// Create handles POST /alerts
// Validates the payload and stores a new alert; status defaults to Active.
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("failed to parse request body", "error", err)
		return Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Create(&req); err != nil {
		return h.validationFailure(c, err)
	}

	alert, err := h.service.Create(c.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create alert", "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Failed to create alert")
	}

	return Message(c, fiber.StatusCreated, "Alert created successfully", alert)
}

// Update handles PUT /alerts/:id
// Applies a validated partial update. Validation runs before any existence check.
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	var req domain.UpdateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("failed to parse request body", "error", err)
		return Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Update(&req); err != nil {
		return h.validationFailure(c, err)
	}

	alert, err := h.service.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAlertID):
			return Fail(c, fiber.StatusBadRequest, "Invalid alert ID")
		case errors.Is(err, domain.ErrAlertNotFound):
			return Fail(c, fiber.StatusNotFound, "Alert not found")
		}
		h.logger.Error("failed to update alert", "id", c.Params("id"), "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Failed to update alert")
	}

	return Message(c, fiber.StatusOK, "Alert updated successfully", alert)
}

// Delete handles DELETE /alerts/:id
// Physically removes the alert.
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAlertID):
			return Fail(c, fiber.StatusBadRequest, "Invalid alert ID")
		case errors.Is(err, domain.ErrAlertNotFound):
			return Fail(c, fiber.StatusNotFound, "Alert not found")
		}
		h.logger.Error("failed to delete alert", "id", c.Params("id"), "error", err)
		return Fail(c, fiber.StatusInternalServerError, "Failed to delete alert")
	}

	return Message(c, fiber.StatusOK, "Alert deleted successfully", nil)
}

// validationFailure shapes a validation error; anything else that escapes the
// validator is an internal fault.
func (h *AlertHandler) validationFailure(c *fiber.Ctx, err error) error {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		h.logger.Debug("validation failed", "error", err)
		return FailValidation(c, verr.Details)
	}
	h.logger.Error("validator fault", "error", err)
	return Fail(c, fiber.StatusInternalServerError, "Internal server error")
}
