package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsystem/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

// NewVenueRepository returns a domain.VenueRepository implemented with Postgres.
func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, address, city, capacity
		FROM venues
		ORDER BY city, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, city, capacity
		FROM venues
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO venues (name, address, city, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, v.Name, v.Address, v.City, v.Capacity).Scan(&v.ID)
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE venues SET name = $2, address = $3, city = $4, capacity = $5
		WHERE id = $1
	`, v.ID, v.Name, v.Address, v.City, v.Capacity)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		if isPQError(err, pqForeignKeyViolation) {
			return fmt.Errorf("%w: venue is still referenced by events", domain.ErrConflict)
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
