// Package memory provides in-memory implementations of the store interfaces,
// used for tests and for running without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"visaslots/internal/domain"
)

// AlertRepository is an in-memory implementation of store.AlertRepository.
// IDs are assigned from a monotonically increasing counter and never reused.
type AlertRepository struct {
	mu     sync.RWMutex
	alerts map[int64]*domain.Alert
	nextID int64
}

// NewAlertRepository creates a new in-memory alert repository.
func NewAlertRepository() *AlertRepository {
	return &AlertRepository{
		alerts: make(map[int64]*domain.Alert),
	}
}

// Create stores a new alert, assigning its ID and CreatedAt.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	alert.ID = r.nextID
	alert.CreatedAt = time.Now().UTC()

	// Store a copy to prevent external modification
	alertCopy := *alert
	r.alerts[alert.ID] = &alertCopy

	return nil
}

// Update applies only the present fields of changes to an existing alert.
func (r *AlertRepository) Update(ctx context.Context, id int64, changes *domain.UpdateAlertRequest) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.alerts[id]
	if !exists {
		return nil, domain.ErrAlertNotFound
	}

	updated := *existing
	changes.ApplyTo(&updated)
	r.alerts[id] = &updated

	result := updated
	return &result, nil
}

// Delete removes an alert by ID.
func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.alerts[id]; !exists {
		return domain.ErrAlertNotFound
	}

	delete(r.alerts, id)
	return nil
}

// GetByID retrieves an alert by its ID.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, exists := r.alerts[id]
	if !exists {
		return nil, domain.ErrAlertNotFound
	}

	// Return a copy
	result := *alert
	return &result, nil
}

// List retrieves alerts matching the filter, newest first, honoring
// Limit and Offset.
func (r *AlertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*domain.Alert{}
	for _, alert := range r.alerts {
		if !matches(alert, filter) {
			continue
		}
		alertCopy := *alert
		results = append(results, &alertCopy)
	}

	// Newest first; ID breaks ties between alerts created within the
	// same clock tick.
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	start := filter.Offset
	if start > len(results) {
		start = len(results)
	}

	end := len(results)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}

	return results[start:end], nil
}

// Count returns the number of alerts matching the filter's predicate.
func (r *AlertRepository) Count(ctx context.Context, filter domain.AlertFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, alert := range r.alerts {
		if matches(alert, filter) {
			count++
		}
	}

	return count, nil
}

// matches applies the same predicate semantics as the PostgreSQL
// implementation: case-insensitive substring on country, exact status.
func matches(alert *domain.Alert, filter domain.AlertFilter) bool {
	if filter.Country != "" &&
		!strings.Contains(strings.ToLower(alert.Country), strings.ToLower(filter.Country)) {
		return false
	}
	if filter.Status != "" && alert.Status != filter.Status {
		return false
	}
	return true
}

// Clear removes all data from the repository. Useful for test cleanup.
// The ID counter is not reset, so IDs are never reused.
func (r *AlertRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alerts = make(map[int64]*domain.Alert)
}
