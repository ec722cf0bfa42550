package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"

	"eventsystem/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// activeCountExpr counts non-cancelled registrations for the outer event row.
const activeCountExpr = `(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id AND r.status <> 'cancelled')`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, categoryIDs, tagIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO events (title, description, start_utc, end_utc, capacity, is_public, venue_id, organizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, e.Title, e.Description, e.StartUTC, e.EndUTC, e.Capacity, e.IsPublic, e.VenueID, e.OrganizerID, e.CreatedAt).
		Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if err = insertAssociations(ctx, tx, e.ID, categoryIDs, tagIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event, categoryIDs, tagIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE events
		SET title = $2, description = $3, start_utc = $4, end_utc = $5,
		    capacity = $6, is_public = $7, venue_id = $8
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.StartUTC, e.EndUTC, e.Capacity, e.IsPublic, e.VenueID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		err = domain.ErrNotFound
		return err
	}

	// Replace the association sets wholesale inside the same transaction.
	if _, err = tx.ExecContext(ctx, `DELETE FROM event_categories WHERE event_id = $1`, e.ID); err != nil {
		return fmt.Errorf("clear event categories: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM event_tags WHERE event_id = $1`, e.ID); err != nil {
		return fmt.Errorf("clear event tags: %w", err)
	}
	if err = insertAssociations(ctx, tx, e.ID, categoryIDs, tagIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertAssociations(ctx context.Context, tx *sql.Tx, eventID string, categoryIDs, tagIDs []string) error {
	for _, cid := range categoryIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_categories (event_id, category_id) VALUES ($1, $2)
			ON CONFLICT (event_id, category_id) DO NOTHING
		`, eventID, cid); err != nil {
			return fmt.Errorf("insert event category: %w", err)
		}
	}
	for _, tid := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2)
			ON CONFLICT (event_id, tag_id) DO NOTHING
		`, eventID, tid); err != nil {
			return fmt.Errorf("insert event tag: %w", err)
		}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, description, start_utc, end_utc, capacity, is_public, venue_id, organizer_id, created_at
		FROM events
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &descNull, &e.StartUTC, &e.EndUTC, &e.Capacity, &e.IsPublic, &e.VenueID, &e.OrganizerID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	return e, nil
}

func (r *eventRepository) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	d := &domain.EventDetails{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT e.id, e.title, e.description, e.start_utc, e.end_utc, e.capacity, e.is_public,
		       e.venue_id, v.name, v.address, v.city, v.capacity, e.organizer_id,
		       `+activeCountExpr+`
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.id = $1
	`, id).Scan(&d.ID, &d.Title, &descNull, &d.StartUTC, &d.EndUTC, &d.Capacity, &d.IsPublic,
		&d.VenueID, &d.VenueName, &d.VenueAddress, &d.VenueCity, &d.VenueCapacity, &d.OrganizerID,
		&d.RegisteredCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		d.Description = &descNull.String
	}

	d.Categories, err = r.listNames(ctx, `
		SELECT c.name FROM categories c
		JOIN event_categories ec ON ec.category_id = c.id
		WHERE ec.event_id = $1
		ORDER BY c.name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list event categories: %w", err)
	}

	d.Tags, err = r.listNames(ctx, `
		SELECT t.name FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = $1
		ORDER BY t.name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list event tags: %w", err)
	}
	return d, nil
}

func (r *eventRepository) listNames(ctx context.Context, query, eventID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const listItemColumns = `e.id, e.title, e.start_utc, e.end_utc, v.city, v.name, e.capacity, ` + activeCountExpr + `, e.is_public`

// escapeLike backslash-escapes LIKE wildcards so user input matches
// literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListPublic streams matching public events lazily. The query runs when the
// consumer starts iterating; breaking out of the loop closes the rows.
func (r *eventRepository) ListPublic(ctx context.Context, f domain.PublicEventFilter) iter.Seq2[*domain.EventListItem, error] {
	where := []string{"e.is_public = TRUE"}
	args := []interface{}{}
	n := 1
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, fmt.Sprintf("e.title ILIKE '%%' || $%d || '%%'", n))
		args = append(args, escapeLike(s))
		n++
	}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, fmt.Sprintf("v.city ILIKE '%%' || $%d || '%%'", n))
		args = append(args, escapeLike(c))
		n++
	}
	if f.CategoryID != "" {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM event_categories ec WHERE ec.event_id = e.id AND ec.category_id = $%d)", n))
		args = append(args, f.CategoryID)
		n++
	}

	var orderBy string
	switch f.Sort {
	case domain.SortPopular:
		orderBy = activeCountExpr + " DESC, e.start_utc ASC"
	case domain.SortSoon:
		orderBy = "e.start_utc ASC"
	default:
		orderBy = "e.start_utc DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE %s
		ORDER BY %s
	`, listItemColumns, strings.Join(where, " AND "), orderBy)

	return func(yield func(*domain.EventListItem, error) bool) {
		rows, err := r.DB.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("list public events: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			item := &domain.EventListItem{}
			if err := rows.Scan(&item.ID, &item.Title, &item.StartUTC, &item.EndUTC,
				&item.City, &item.VenueName, &item.Capacity, &item.RegisteredCount, &item.IsPublic); err != nil {
				yield(nil, fmt.Errorf("scan event row: %w", err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.EventListItem, error) {
	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.organizer_id = $1
		ORDER BY e.start_utc DESC
	`, listItemColumns), organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.EventListItem, 0)
	for rows.Next() {
		item := &domain.EventListItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.StartUTC, &item.EndUTC,
			&item.City, &item.VenueName, &item.Capacity, &item.RegisteredCount, &item.IsPublic); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
