package domain

import "context"

// DashboardTotals aggregates row counts for the admin dashboard.
// swagger:model DashboardTotals
type DashboardTotals struct {
	Events              int `json:"events"`
	Venues              int `json:"venues"`
	Categories          int `json:"categories"`
	Tags                int `json:"tags"`
	ActiveRegistrations int `json:"active_registrations"`
}

// StatsRepository reads aggregate counts. Read-only.
type StatsRepository interface {
	Totals(ctx context.Context) (*DashboardTotals, error)
}

// StatsService exposes the dashboard projection. Read-only, safe to retry.
type StatsService interface {
	Totals(ctx context.Context) (*DashboardTotals, error)
}
