package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"eventsystem/internal/domain"
)

// Event capacity bounds. The venue's capacity tightens the upper bound
// further per event.
const (
	minEventCapacity = 1
	maxEventCapacity = 100_000
)

type eventService struct {
	eventRepo    domain.EventRepository
	venueRepo    domain.VenueRepository
	categoryRepo domain.CategoryRepository
	tagRepo      domain.TagRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	categoryRepo domain.CategoryRepository,
	tagRepo domain.TagRepository,
) domain.EventService {
	return &eventService{
		eventRepo:    eventRepo,
		venueRepo:    venueRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (s *eventService) ListPublic(ctx context.Context, f domain.PublicEventFilter) iter.Seq2[*domain.EventListItem, error] {
	return s.eventRepo.ListPublic(ctx, f)
}

func (s *eventService) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	details, err := s.eventRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event details: %w", err)
	}
	return details, nil
}

func (s *eventService) Create(ctx context.Context, in domain.EventUpsert, organizerID string) (string, error) {
	if organizerID == "" {
		return "", fmt.Errorf("%w: organizer is required", domain.ErrInvalidInput)
	}
	event, categoryIDs, tagIDs, err := s.validateUpsert(ctx, in)
	if err != nil {
		return "", err
	}
	event.OrganizerID = organizerID
	event.CreatedAt = time.Now().UTC()

	if err := s.eventRepo.Create(ctx, event, categoryIDs, tagIDs); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return event.ID, nil
}

func (s *eventService) Update(ctx context.Context, id string, in domain.EventUpsert, canEdit bool) error {
	if !canEdit {
		return fmt.Errorf("%w: no permission to edit this event", domain.ErrForbidden)
	}
	// Validate before touching the row: a rejected category list must never
	// leave the event with its associations cleared.
	event, categoryIDs, tagIDs, err := s.validateUpsert(ctx, in)
	if err != nil {
		return err
	}
	event.ID = id

	if err := s.eventRepo.Update(ctx, event, categoryIDs, tagIDs); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) Delete(ctx context.Context, id string, canDelete bool) error {
	if !canDelete {
		return fmt.Errorf("%w: no permission to delete this event", domain.ErrForbidden)
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.EventListItem, error) {
	items, err := s.eventRepo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	if items == nil {
		items = []*domain.EventListItem{}
	}
	return items, nil
}

// validateUpsert applies the catalog rules shared by Create and Update:
// title present, end after start, capacity within bounds and within the
// venue's capacity, at least one category, and every referenced id
// resolving. Start/end are normalized to UTC; id lists are de-duplicated.
func (s *eventService) validateUpsert(ctx context.Context, in domain.EventUpsert) (*domain.Event, []string, []string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, nil, nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	start := in.StartUTC.UTC()
	end := in.EndUTC.UTC()
	if !end.After(start) {
		return nil, nil, nil, fmt.Errorf("%w: end must be after start", domain.ErrInvalidInput)
	}
	if in.Capacity < minEventCapacity || in.Capacity > maxEventCapacity {
		return nil, nil, nil, fmt.Errorf("%w: capacity must be between %d and %d",
			domain.ErrInvalidInput, minEventCapacity, maxEventCapacity)
	}

	venue, err := s.venueRepo.GetByID(ctx, in.VenueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: venue not found", domain.ErrInvalidInput)
		}
		return nil, nil, nil, fmt.Errorf("get venue: %w", err)
	}
	if in.Capacity > venue.Capacity {
		return nil, nil, nil, fmt.Errorf("%w: event capacity cannot exceed venue capacity", domain.ErrInvalidInput)
	}

	categoryIDs := dedupe(in.CategoryIDs)
	if len(categoryIDs) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: at least one category is required", domain.ErrInvalidInput)
	}
	for _, cid := range categoryIDs {
		if _, err := s.categoryRepo.GetByID(ctx, cid); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, nil, fmt.Errorf("%w: unknown category id %s", domain.ErrInvalidInput, cid)
			}
			return nil, nil, nil, fmt.Errorf("get category: %w", err)
		}
	}

	tagIDs := dedupe(in.TagIDs)
	for _, tid := range tagIDs {
		if _, err := s.tagRepo.GetByID(ctx, tid); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, nil, fmt.Errorf("%w: unknown tag id %s", domain.ErrInvalidInput, tid)
			}
			return nil, nil, nil, fmt.Errorf("get tag: %w", err)
		}
	}

	var description *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d != "" {
			description = &d
		}
	}

	event := &domain.Event{
		Title:       title,
		Description: description,
		StartUTC:    start,
		EndUTC:      end,
		Capacity:    in.Capacity,
		IsPublic:    in.IsPublic,
		VenueID:     in.VenueID,
	}
	return event, categoryIDs, tagIDs, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
