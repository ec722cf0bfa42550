package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsystem/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		t := &domain.Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	t := &domain.Tag{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	if err != nil {
		if isPQError(err, pqUniqueViolation) {
			return fmt.Errorf("%w: tag name must be unique: %s", domain.ErrConflict, t.Name)
		}
		return err
	}
	return nil
}

func (r *tagRepository) Update(ctx context.Context, t *domain.Tag) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE tags SET name = $2 WHERE id = $1`, t.ID, t.Name)
	if err != nil {
		if isPQError(err, pqUniqueViolation) {
			return fmt.Errorf("%w: tag name must be unique: %s", domain.ErrConflict, t.Name)
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
