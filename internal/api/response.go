// Package api provides HTTP handlers and routing for the visa slot tracker REST API.
package api

import (
	"github.com/gofiber/fiber/v2"

	"visaslots/internal/domain"
	"visaslots/internal/validate"
)

// ListResponse is the body of a successful listing: one page of alerts plus
// pagination metadata.
type ListResponse struct {
	Data       []*domain.Alert   `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string        `json:"message"`
	Data    *domain.Alert `json:"data,omitempty"`
}

// ErrorResponse is the body of every error response. Details is populated
// for validation failures only; Message carries internal error detail in
// development mode.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Message string                `json:"message,omitempty"`
	Details []validate.FieldError `json:"details,omitempty"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Message sends a success response wrapping a mutation result.
func Message(c *fiber.Ctx, status int, message string, data *domain.Alert) error {
	return c.Status(status).JSON(MessageResponse{
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response with the given status code.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error: message,
	})
}

// FailValidation sends a 400 response carrying one entry per violated field.
func FailValidation(c *fiber.Ctx, details []validate.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}
