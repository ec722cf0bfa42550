package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eventsystem/internal/domain"
)

func newLookupServiceForTest(venues *fakeVenueRepo, categories *fakeCategoryRepo, tags *fakeTagRepo) domain.LookupService {
	if venues == nil {
		venues = newFakeVenueRepo()
	}
	if categories == nil {
		categories = newFakeCategoryRepo()
	}
	if tags == nil {
		tags = newFakeTagRepo()
	}
	return NewLookupService(venues, categories, tags)
}

func TestLookupService_CreateVenue(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name is rejected", func(t *testing.T) {
		svc := newLookupServiceForTest(nil, nil, nil)
		if _, err := svc.CreateVenue(ctx, "   ", "1 Bulgaria Blvd", "Sofia", 100); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("non-positive capacity is rejected", func(t *testing.T) {
		svc := newLookupServiceForTest(nil, nil, nil)
		if _, err := svc.CreateVenue(ctx, "NDK", "1 Bulgaria Blvd", "Sofia", 0); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for capacity 0, got %v", err)
		}
		if _, err := svc.CreateVenue(ctx, "NDK", "1 Bulgaria Blvd", "Sofia", -5); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for negative capacity, got %v", err)
		}
	})

	t.Run("trims fields before storing", func(t *testing.T) {
		venues := newFakeVenueRepo()
		svc := newLookupServiceForTest(venues, nil, nil)
		id, err := svc.CreateVenue(ctx, "  NDK  ", " 1 Bulgaria Blvd ", " Sofia ", 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := venues.byID[id]
		if stored.Name != "NDK" || stored.Address != "1 Bulgaria Blvd" || stored.City != "Sofia" {
			t.Fatalf("expected trimmed fields, got %+v", stored)
		}
	})
}

func TestLookupService_UpdateVenue(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		svc := newLookupServiceForTest(newFakeVenueRepo(), nil, nil)
		err := svc.UpdateVenue(ctx, "venue-missing", "NDK", "1 Bulgaria Blvd", "Sofia", 5000)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("success replaces the record", func(t *testing.T) {
		venues := newFakeVenueRepo(&domain.Venue{ID: "venue-1", Name: "NDK", Capacity: 5000})
		svc := newLookupServiceForTest(venues, nil, nil)
		if err := svc.UpdateVenue(ctx, "venue-1", "NDK Hall 1", "1 Bulgaria Blvd", "Sofia", 3000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venues.byID["venue-1"].Capacity != 3000 {
			t.Fatalf("expected capacity 3000, got %d", venues.byID["venue-1"].Capacity)
		}
	})
}

func TestLookupService_DeleteVenue(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced venue surfaces ErrConflict", func(t *testing.T) {
		venues := newFakeVenueRepo(&domain.Venue{ID: "venue-1"})
		venues.deleteErr = fmt.Errorf("%w: venue is referenced by events", domain.ErrConflict)
		svc := newLookupServiceForTest(venues, nil, nil)
		if err := svc.DeleteVenue(ctx, "venue-1"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		svc := newLookupServiceForTest(newFakeVenueRepo(), nil, nil)
		if err := svc.DeleteVenue(ctx, "venue-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestLookupService_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name is rejected", func(t *testing.T) {
		svc := newLookupServiceForTest(nil, nil, nil)
		if _, err := svc.CreateCategory(ctx, " \t "); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if err := svc.UpdateCategory(ctx, "cat-1", ""); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput on update, got %v", err)
		}
	})

	t.Run("duplicate name surfaces ErrConflict", func(t *testing.T) {
		categories := newFakeCategoryRepo()
		categories.createErr = fmt.Errorf("%w: category name already exists", domain.ErrConflict)
		svc := newLookupServiceForTest(nil, categories, nil)
		if _, err := svc.CreateCategory(ctx, "Tech"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("rename to a taken name surfaces ErrConflict", func(t *testing.T) {
		categories := newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Tech"})
		categories.updateErr = fmt.Errorf("%w: category name already exists", domain.ErrConflict)
		svc := newLookupServiceForTest(nil, categories, nil)
		if err := svc.UpdateCategory(ctx, "cat-1", "Music"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("create trims the name", func(t *testing.T) {
		categories := newFakeCategoryRepo()
		svc := newLookupServiceForTest(nil, categories, nil)
		id, err := svc.CreateCategory(ctx, "  Tech  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := categories.byID[id].Name; got != "Tech" {
			t.Fatalf("expected trimmed name, got %q", got)
		}
	})

	t.Run("delete unknown id returns ErrNotFound", func(t *testing.T) {
		svc := newLookupServiceForTest(nil, newFakeCategoryRepo(), nil)
		if err := svc.DeleteCategory(ctx, "cat-missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestLookupService_Tags(t *testing.T) {
	ctx := context.Background()

	t.Run("blank name is rejected", func(t *testing.T) {
		svc := newLookupServiceForTest(nil, nil, nil)
		if _, err := svc.CreateTag(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("duplicate name surfaces ErrConflict", func(t *testing.T) {
		tags := newFakeTagRepo()
		tags.createErr = fmt.Errorf("%w: tag name already exists", domain.ErrConflict)
		svc := newLookupServiceForTest(nil, nil, tags)
		if _, err := svc.CreateTag(ctx, "Workshop"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("update and delete round-trip", func(t *testing.T) {
		tags := newFakeTagRepo(&domain.Tag{ID: "tag-1", Name: "Workshop"})
		svc := newLookupServiceForTest(nil, nil, tags)
		if err := svc.UpdateTag(ctx, "tag-1", "Hands-on"); err != nil {
			t.Fatalf("update: %v", err)
		}
		if got := tags.byID["tag-1"].Name; got != "Hands-on" {
			t.Fatalf("expected renamed tag, got %q", got)
		}
		if err := svc.DeleteTag(ctx, "tag-1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := svc.DeleteTag(ctx, "tag-1"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestLookupService_ListsNeverReturnNil(t *testing.T) {
	ctx := context.Background()
	svc := newLookupServiceForTest(nil, nil, nil)

	venues, err := svc.ListVenues(ctx)
	if err != nil || venues == nil {
		t.Fatalf("expected empty venue slice, got %v (err %v)", venues, err)
	}
	categories, err := svc.ListCategories(ctx)
	if err != nil || categories == nil {
		t.Fatalf("expected empty category slice, got %v (err %v)", categories, err)
	}
	tags, err := svc.ListTags(ctx)
	if err != nil || tags == nil {
		t.Fatalf("expected empty tag slice, got %v (err %v)", tags, err)
	}
}
