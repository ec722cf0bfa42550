package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsystem/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
}

// NewRegistrationService creates a RegistrationService with the given repositories.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if eventID == "" || userID == "" {
		return nil, fmt.Errorf("%w: event and user are required", domain.ErrInvalidInput)
	}
	reg, err := s.registrationRepo.Register(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		// Surface domain errors as-is so the boundary can pick the status.
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrForbidden) ||
			errors.Is(err, domain.ErrConflict) ||
			errors.Is(err, domain.ErrEventFull) {
			return nil, err
		}
		return nil, fmt.Errorf("register for event: %w", err)
	}
	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, eventID, userID string) error {
	if err := s.registrationRepo.Cancel(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

func (s *registrationService) Approve(ctx context.Context, registrationID string) (*domain.Registration, error) {
	reg, err := s.registrationRepo.Approve(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrInvalidInput) ||
			errors.Is(err, domain.ErrEventFull) {
			return nil, err
		}
		return nil, fmt.Errorf("approve registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListMine(ctx context.Context, userID string) ([]*domain.RegistrationItem, error) {
	items, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if items == nil {
		items = []*domain.RegistrationItem{}
	}
	return items, nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.RegistrationItem, int, error) {
	// Resolve the event first so a missing id reads as not-found rather
	// than an empty page.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	items, total, err := s.registrationRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list event registrations: %w", err)
	}
	if items == nil {
		items = []*domain.RegistrationItem{}
	}
	return items, total, nil
}
