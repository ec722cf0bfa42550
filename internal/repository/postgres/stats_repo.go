package postgres

import (
	"context"
	"database/sql"

	"eventsystem/internal/domain"
)

type statsRepository struct {
	DB *sql.DB
}

// NewStatsRepository returns a domain.StatsRepository implemented with Postgres.
func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &statsRepository{DB: db}
}

func (r *statsRepository) Totals(ctx context.Context) (*domain.DashboardTotals, error) {
	t := &domain.DashboardTotals{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM venues),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM tags),
			(SELECT COUNT(*) FROM registrations WHERE status <> 'cancelled')
	`).Scan(&t.Events, &t.Venues, &t.Categories, &t.Tags, &t.ActiveRegistrations)
	if err != nil {
		return nil, err
	}
	return t, nil
}
