// Package store defines the persistence interfaces for the visa slot tracker.
package store

import (
	"context"

	"visaslots/internal/domain"
)

// AlertRepository defines the interface for persistent alert storage.
// This is typically backed by PostgreSQL for production use.
type AlertRepository interface {
	// Create inserts a new alert and fills in the store-assigned ID and
	// CreatedAt on the passed entity.
	Create(ctx context.Context, alert *domain.Alert) error

	// Update applies only the present fields of changes to the alert with
	// the given id and returns the full updated record. Existence and
	// mutation happen in a single conditional statement; a missing row is
	// reported as domain.ErrAlertNotFound.
	Update(ctx context.Context, id int64, changes *domain.UpdateAlertRequest) (*domain.Alert, error)

	// Delete physically removes the alert with the given id.
	// Returns domain.ErrAlertNotFound when no row matches.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a single alert by its id.
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)

	// List retrieves alerts matching the filter, newest first, honoring
	// the filter's Limit and Offset.
	List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error)

	// Count returns the number of alerts matching the filter's predicate,
	// ignoring Limit and Offset.
	Count(ctx context.Context, filter domain.AlertFilter) (int, error)
}
