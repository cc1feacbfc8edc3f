package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"visaslots/internal/domain"
)

const alertColumns = "id, country, city, visa_type, status, created_at"

// AlertRepository implements store.AlertRepository using PostgreSQL.
type AlertRepository struct {
	db *DB
}

// NewAlertRepository creates a new PostgreSQL-backed alert repository.
func NewAlertRepository(db *DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create stores a new alert. The id and created_at are assigned by the
// database and written back onto the entity.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (country, city, visa_type, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.pool.QueryRow(ctx, query,
		alert.Country,
		alert.City,
		alert.VisaType,
		alert.Status,
	).Scan(&alert.ID, &alert.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// Update applies only the present fields of changes in a single conditional
// statement. Zero matched rows means the alert does not exist, which also
// resolves a concurrent delete between check and mutation.
func (r *AlertRepository) Update(ctx context.Context, id int64, changes *domain.UpdateAlertRequest) (*domain.Alert, error) {
	if changes.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := make([]string, 0, 4)
	args := []interface{}{id}
	argNum := 2

	if changes.Country != nil {
		set = append(set, fmt.Sprintf("country = $%d", argNum))
		args = append(args, *changes.Country)
		argNum++
	}
	if changes.City != nil {
		set = append(set, fmt.Sprintf("city = $%d", argNum))
		args = append(args, *changes.City)
		argNum++
	}
	if changes.VisaType != nil {
		set = append(set, fmt.Sprintf("visa_type = $%d", argNum))
		args = append(args, *changes.VisaType)
		argNum++
	}
	if changes.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *changes.Status)
	}

	query := fmt.Sprintf(
		"UPDATE alerts SET %s WHERE id = $1 RETURNING %s",
		strings.Join(set, ", "), alertColumns,
	)

	alert, err := scanAlert(r.db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}

	return alert, nil
}

// Delete physically removes an alert.
func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.pool.Exec(ctx, "DELETE FROM alerts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAlertNotFound
	}

	return nil
}

// GetByID retrieves an alert by its database ID.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	query := fmt.Sprintf("SELECT %s FROM alerts WHERE id = $1", alertColumns)

	alert, err := scanAlert(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return alert, nil
}

// List retrieves alerts matching the filter, newest first.
func (r *AlertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error) {
	where, args := filterClauses(filter)
	argNum := len(args) + 1

	query := fmt.Sprintf("SELECT %s FROM alerts%s ORDER BY created_at DESC", alertColumns, where)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// Count returns the number of alerts matching the filter's predicate.
func (r *AlertRepository) Count(ctx context.Context, filter domain.AlertFilter) (int, error) {
	where, args := filterClauses(filter)

	var count int
	err := r.db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM alerts"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	return count, nil
}

// filterClauses expands the optional filter fields into a WHERE clause with
// positional arguments. Count and List share the same predicate.
func filterClauses(filter domain.AlertFilter) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argNum := 1

	if filter.Country != "" {
		where += fmt.Sprintf(" AND country ILIKE $%d", argNum)
		args = append(args, "%"+filter.Country+"%")
		argNum++
	}

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filter.Status)
	}

	return where, args
}

// scanAlert scans a single row into an Alert.
func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var alert domain.Alert

	err := row.Scan(
		&alert.ID,
		&alert.Country,
		&alert.City,
		&alert.VisaType,
		&alert.Status,
		&alert.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &alert, nil
}

// scanAlerts scans multiple rows into a slice of Alerts.
func scanAlerts(rows pgx.Rows) ([]*domain.Alert, error) {
	alerts := []*domain.Alert{}

	for rows.Next() {
		var alert domain.Alert

		err := rows.Scan(
			&alert.ID,
			&alert.Country,
			&alert.City,
			&alert.VisaType,
			&alert.Status,
			&alert.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alerts = append(alerts, &alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}
