// Package alerts implements the service-level repository operations for
// visa slot alerts: filtered listing with pagination, create, partial
// update, and delete.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"visaslots/internal/domain"
	"visaslots/internal/metrics"
	"visaslots/internal/store"
)

// Default pagination values, applied when parameters are absent or invalid.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListParams carries the optional filters and pagination for a listing.
// Non-positive Page/Limit fall back to the defaults.
type ListParams struct {
	Country string
	Status  string
	Page    int
	Limit   int
}

// ListResult is one page of alerts plus pagination metadata.
type ListResult struct {
	Alerts     []*domain.Alert
	Pagination domain.Pagination
}

// Service implements the alert operations on top of an AlertRepository.
type Service struct {
	repo   store.AlertRepository
	logger *slog.Logger
}

// NewService creates a new alert service.
func NewService(repo store.AlertRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the requested page of alerts matching the filters, newest
// first, along with pagination metadata. The count and the bounded select
// share the same predicate.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	filter := domain.AlertFilter{
		Country: params.Country,
		Status:  domain.Status(params.Status),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	results, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &ListResult{
		Alerts: results,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Create stores a new alert. The payload is assumed validated; status
// defaults to Active when absent.
func (s *Service) Create(ctx context.Context, req *domain.CreateAlertRequest) (*domain.Alert, error) {
	alert := req.ToAlert()

	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	metrics.AlertsCreatedTotal.WithLabelValues(string(alert.VisaType)).Inc()
	s.logger.Info("created alert",
		"id", alert.ID,
		"country", alert.Country,
		"city", alert.City,
		"visa_type", alert.VisaType,
	)

	return alert, nil
}

// Update applies the present fields of a validated partial update to the
// alert with the given id and returns the full updated record. Existence and
// mutation happen in one conditional statement at the store.
func (s *Service) Update(ctx context.Context, rawID string, req *domain.UpdateAlertRequest) (*domain.Alert, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	alert, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}

	metrics.AlertsUpdatedTotal.Inc()
	s.logger.Info("updated alert", "id", alert.ID, "status", alert.Status)

	return alert, nil
}

// Delete physically removes the alert with the given id.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return domain.ErrAlertNotFound
		}
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	metrics.AlertsDeletedTotal.Inc()
	s.logger.Info("deleted alert", "id", id)

	return nil
}

// Get retrieves a single alert by id. Used as the existence check.
func (s *Service) Get(ctx context.Context, rawID string) (*domain.Alert, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return alert, nil
}

// ParseID parses a path parameter into a positive integer alert id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidAlertID
	}
	return id, nil
}
