package services

import (
	"context"
	"fmt"

	"eventsystem/internal/domain"
)

type statsService struct {
	statsRepo domain.StatsRepository
}

// NewStatsService creates the read-only dashboard projection service.
func NewStatsService(statsRepo domain.StatsRepository) domain.StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Totals(ctx context.Context) (*domain.DashboardTotals, error) {
	totals, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return totals, nil
}
