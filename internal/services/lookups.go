package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventsystem/internal/domain"
)

type lookupService struct {
	venueRepo    domain.VenueRepository
	categoryRepo domain.CategoryRepository
	tagRepo      domain.TagRepository
}

// NewLookupService creates a LookupService over the reference-data repositories.
func NewLookupService(
	venueRepo domain.VenueRepository,
	categoryRepo domain.CategoryRepository,
	tagRepo domain.TagRepository,
) domain.LookupService {
	return &lookupService{
		venueRepo:    venueRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (s *lookupService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	return venues, nil
}

func (s *lookupService) CreateVenue(ctx context.Context, name, address, city string, capacity int) (string, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if capacity <= 0 {
		return "", fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	v := &domain.Venue{Name: name, Address: address, City: city, Capacity: capacity}
	if err := s.venueRepo.Create(ctx, v); err != nil {
		return "", fmt.Errorf("create venue: %w", err)
	}
	return v.ID, nil
}

func (s *lookupService) UpdateVenue(ctx context.Context, id, name, address, city string, capacity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	v := &domain.Venue{
		ID:       id,
		Name:     name,
		Address:  strings.TrimSpace(address),
		City:     strings.TrimSpace(city),
		Capacity: capacity,
	}
	if err := s.venueRepo.Update(ctx, v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (s *lookupService) DeleteVenue(ctx context.Context, id string) error {
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *lookupService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *lookupService) CreateCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	c := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("create category: %w", err)
	}
	return c.ID, nil
}

func (s *lookupService) UpdateCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.categoryRepo.Update(ctx, &domain.Category{ID: id, Name: name})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *lookupService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *lookupService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

func (s *lookupService) CreateTag(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	t := &domain.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, t); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("create tag: %w", err)
	}
	return t.ID, nil
}

func (s *lookupService) UpdateTag(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	err := s.tagRepo.Update(ctx, &domain.Tag{ID: id, Name: name})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

func (s *lookupService) DeleteTag(ctx context.Context, id string) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
