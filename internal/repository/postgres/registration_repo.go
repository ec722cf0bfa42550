package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventsystem/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository
// implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

// Register books a seat inside a transaction that first takes a row-level
// lock on the event (SELECT ... FOR UPDATE). Two concurrent registrations
// for the same event therefore serialize: the second blocks until the
// first commits and then sees the updated count, so the capacity check and
// the write act on one consistent snapshot.
func (r *registrationRepository) Register(ctx context.Context, eventID, userID string, now time.Time) (*domain.Registration, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	var isPublic bool
	err = tx.QueryRowContext(ctx, `
		SELECT capacity, is_public
		FROM events
		WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&capacity, &isPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	if !isPublic {
		err = fmt.Errorf("%w: cannot register for a private event", domain.ErrForbidden)
		return nil, err
	}

	var existingID string
	var existingStatus domain.RegistrationStatus
	err = tx.QueryRowContext(ctx, `
		SELECT id, status FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID).Scan(&existingID, &existingStatus)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	hasRow := err == nil
	err = nil
	if hasRow && existingStatus != domain.StatusCancelled {
		err = fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
		return nil, err
	}

	var activeCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations
		WHERE event_id = $1 AND status <> 'cancelled'
	`, eventID).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("count active registrations: %w", err)
	}
	if activeCount >= capacity {
		err = domain.ErrEventFull
		return nil, err
	}

	reg := &domain.Registration{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: now,
		Status:       domain.StatusPending,
	}
	if hasRow {
		// Reactivate the cancelled row in place; the (event_id, user_id)
		// uniqueness constraint forbids a second row for the pair.
		_, err = tx.ExecContext(ctx, `
			UPDATE registrations SET status = $2, registered_at = $3
			WHERE id = $1
		`, existingID, domain.StatusPending, now)
		if err != nil {
			return nil, fmt.Errorf("reactivate registration: %w", err)
		}
		reg.ID = existingID
	} else {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO registrations (event_id, user_id, registered_at, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, eventID, userID, now, domain.StatusPending).Scan(&reg.ID)
		if err != nil {
			return nil, fmt.Errorf("insert registration: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// Cancel is an unconditional status overwrite: cancelling an already
// cancelled registration succeeds as a no-op.
func (r *registrationRepository) Cancel(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE registrations SET status = $3
		WHERE event_id = $1 AND user_id = $2
	`, eventID, userID, domain.StatusCancelled)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Approve locks the event row before counting, using the same lock order
// as Register (event first, then registration) so the two cannot deadlock.
// The capacity refusal is strictly greater-than: an approval that exactly
// reaches capacity goes through.
func (r *registrationRepository) Approve(ctx context.Context, registrationID string) (*domain.Registration, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var eventID string
	err = tx.QueryRowContext(ctx,
		`SELECT event_id FROM registrations WHERE id = $1`, registrationID).Scan(&eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
	if err != nil {
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	reg := &domain.Registration{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, event_id, user_id, registered_at, status
		FROM registrations
		WHERE id = $1
		FOR UPDATE
	`, registrationID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.Status == domain.StatusCancelled {
		err = fmt.Errorf("%w: cancelled registrations cannot be approved", domain.ErrInvalidInput)
		return nil, err
	}

	var activeCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations
		WHERE event_id = $1 AND status <> 'cancelled'
	`, eventID).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("count active registrations: %w", err)
	}
	if activeCount > capacity {
		err = domain.ErrEventFull
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE registrations SET status = $2 WHERE id = $1
	`, registrationID, domain.StatusApproved); err != nil {
		return nil, fmt.Errorf("approve registration: %w", err)
	}
	reg.Status = domain.StatusApproved

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

const registrationItemQuery = `
	SELECT r.id, r.event_id, e.title, e.start_utc, r.registered_at, r.status
	FROM registrations r
	JOIN events e ON e.id = r.event_id
`

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RegistrationItem, error) {
	rows, err := r.DB.QueryContext(ctx, registrationItemQuery+`
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrationItems(rows)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.RegistrationItem, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, registrationItemQuery+`
		WHERE r.event_id = $1
		ORDER BY r.registered_at DESC
		LIMIT $2 OFFSET $3
	`, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanRegistrationItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanRegistrationItems(rows *sql.Rows) ([]*domain.RegistrationItem, error) {
	items := make([]*domain.RegistrationItem, 0)
	for rows.Next() {
		item := &domain.RegistrationItem{}
		if err := rows.Scan(&item.ID, &item.EventID, &item.EventTitle,
			&item.EventStartUTC, &item.RegisteredAt, &item.Status); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
