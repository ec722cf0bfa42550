package services

import (
	"context"
	"errors"
	"iter"
	"strconv"
	"testing"
	"time"

	"eventsystem/internal/domain"
)

// fakeVenueRepo is an in-memory VenueRepository for tests.
type fakeVenueRepo struct {
	byID      map[string]*domain.Venue
	nextID    int
	createErr error
	updateErr error
	deleteErr error
}

func newFakeVenueRepo(venues ...*domain.Venue) *fakeVenueRepo {
	r := &fakeVenueRepo{byID: make(map[string]*domain.Venue), nextID: 1}
	for _, v := range venues {
		r.byID[v.ID] = v
	}
	return r
}

func (r *fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	if r.createErr != nil {
		return r.createErr
	}
	v.ID = "venue-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.byID[v.ID] = v
	return nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for tests.
type fakeCategoryRepo struct {
	byID      map[string]*domain.Category
	nextID    int
	createErr error
	updateErr error
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: make(map[string]*domain.Category), nextID: 1}
	for _, c := range categories {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	c.ID = "cat-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeTagRepo is an in-memory TagRepository for tests.
type fakeTagRepo struct {
	byID      map[string]*domain.Tag
	nextID    int
	createErr error
	updateErr error
}

func newFakeTagRepo(tags ...*domain.Tag) *fakeTagRepo {
	r := &fakeTagRepo{byID: make(map[string]*domain.Tag), nextID: 1}
	for _, tg := range tags {
		r.byID[tg.ID] = tg
	}
	return r
}

func (r *fakeTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	out := make([]*domain.Tag, 0, len(r.byID))
	for _, tg := range r.byID {
		out = append(out, tg)
	}
	return out, nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	tg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return tg, nil
}

func (r *fakeTagRepo) Create(ctx context.Context, tg *domain.Tag) error {
	if r.createErr != nil {
		return r.createErr
	}
	tg.ID = "tag-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.byID[tg.ID] = tg
	return nil
}

func (r *fakeTagRepo) Update(ctx context.Context, tg *domain.Tag) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[tg.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[tg.ID] = tg
	return nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeEventRepo records writes and serves a small in-memory event set.
type fakeEventRepo struct {
	byID        map[string]*domain.Event
	created     *domain.Event
	createdCats []string
	createdTags []string
	updated     *domain.Event
	updateCalls int
	deleteErr   error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	r := &fakeEventRepo{byID: make(map[string]*domain.Event)}
	for _, e := range events {
		r.byID[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, e *domain.Event, categoryIDs, tagIDs []string) error {
	e.ID = "ev-created"
	r.created = e
	r.createdCats = categoryIDs
	r.createdTags = tagIDs
	r.byID[e.ID] = e
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.EventDetails{ID: e.ID, Title: e.Title, IsPublic: e.IsPublic, OrganizerID: e.OrganizerID}, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, e *domain.Event, categoryIDs, tagIDs []string) error {
	r.updateCalls++
	if _, ok := r.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.updated = e
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeEventRepo) ListPublic(ctx context.Context, f domain.PublicEventFilter) iter.Seq2[*domain.EventListItem, error] {
	return func(yield func(*domain.EventListItem, error) bool) {
		for _, e := range r.byID {
			if !e.IsPublic {
				continue
			}
			if !yield(&domain.EventListItem{ID: e.ID, Title: e.Title, IsPublic: true}, nil) {
				return
			}
		}
	}
}

func (r *fakeEventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.EventListItem, error) {
	var out []*domain.EventListItem
	for _, e := range r.byID {
		if e.OrganizerID == organizerID {
			out = append(out, &domain.EventListItem{ID: e.ID, Title: e.Title})
		}
	}
	return out, nil
}

func validUpsert() domain.EventUpsert {
	return domain.EventUpsert{
		Title:       "GopherCon",
		StartUTC:    time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC),
		EndUTC:      time.Date(2025, 7, 1, 20, 0, 0, 0, time.UTC),
		Capacity:    100,
		IsPublic:    true,
		VenueID:     "venue-1",
		CategoryIDs: []string{"cat-1"},
		TagIDs:      []string{"tag-1"},
	}
}

func newEventServiceForTest(eventRepo *fakeEventRepo) domain.EventService {
	return NewEventService(
		eventRepo,
		newFakeVenueRepo(&domain.Venue{ID: "venue-1", Name: "NDK", City: "Sofia", Capacity: 100}),
		newFakeCategoryRepo(&domain.Category{ID: "cat-1", Name: "Tech"}),
		newFakeTagRepo(&domain.Tag{ID: "tag-1", Name: "Workshop"}),
	)
}

func TestEventService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *domain.EventUpsert)
	}{
		{"blank title", func(in *domain.EventUpsert) { in.Title = "   " }},
		{"end equals start", func(in *domain.EventUpsert) { in.EndUTC = in.StartUTC }},
		{"end before start", func(in *domain.EventUpsert) { in.EndUTC = in.StartUTC.Add(-time.Hour) }},
		{"zero capacity", func(in *domain.EventUpsert) { in.Capacity = 0 }},
		{"capacity above global bound", func(in *domain.EventUpsert) { in.Capacity = 100_001 }},
		{"unknown venue", func(in *domain.EventUpsert) { in.VenueID = "venue-missing" }},
		{"capacity above venue capacity", func(in *domain.EventUpsert) { in.Capacity = 101 }},
		{"no categories", func(in *domain.EventUpsert) { in.CategoryIDs = nil }},
		{"only empty category ids", func(in *domain.EventUpsert) { in.CategoryIDs = []string{"", ""} }},
		{"unknown category", func(in *domain.EventUpsert) { in.CategoryIDs = []string{"cat-missing"} }},
		{"unknown tag", func(in *domain.EventUpsert) { in.TagIDs = []string{"tag-missing"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			svc := newEventServiceForTest(repo)
			in := validUpsert()
			tt.mutate(&in)

			_, err := svc.Create(ctx, in, "user-1")
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.created != nil {
				t.Fatal("repository write must not happen on validation failure")
			}
		})
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("capacity equal to venue capacity is allowed", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newEventServiceForTest(repo)
		in := validUpsert()
		in.Capacity = 100 // venue capacity

		id, err := svc.Create(ctx, in, "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "ev-created" {
			t.Fatalf("expected created id, got %q", id)
		}
		if repo.created.OrganizerID != "user-1" {
			t.Fatalf("organizer not set: %q", repo.created.OrganizerID)
		}
	})

	t.Run("normalizes instants to UTC", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newEventServiceForTest(repo)
		sofia := time.FixedZone("EET", 2*60*60)
		in := validUpsert()
		in.StartUTC = time.Date(2025, 7, 1, 20, 0, 0, 0, sofia)
		in.EndUTC = time.Date(2025, 7, 1, 22, 0, 0, 0, sofia)

		if _, err := svc.Create(ctx, in, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc := repo.created.StartUTC.Location(); loc != time.UTC {
			t.Fatalf("start not normalized, location %v", loc)
		}
		if !repo.created.StartUTC.Equal(in.StartUTC) {
			t.Fatal("normalization must not change the instant")
		}
	})

	t.Run("de-duplicates association ids", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newEventServiceForTest(repo)
		in := validUpsert()
		in.CategoryIDs = []string{"cat-1", "cat-1", ""}
		in.TagIDs = []string{"tag-1", "tag-1"}

		if _, err := svc.Create(ctx, in, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.createdCats) != 1 || repo.createdCats[0] != "cat-1" {
			t.Fatalf("categories not de-duplicated: %v", repo.createdCats)
		}
		if len(repo.createdTags) != 1 {
			t.Fatalf("tags not de-duplicated: %v", repo.createdTags)
		}
	})

	t.Run("blank description becomes nil", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newEventServiceForTest(repo)
		blank := "   "
		in := validUpsert()
		in.Description = &blank

		if _, err := svc.Create(ctx, in, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.created.Description != nil {
			t.Fatalf("expected nil description, got %q", *repo.created.Description)
		}
	})

	t.Run("missing organizer is rejected", func(t *testing.T) {
		svc := newEventServiceForTest(newFakeEventRepo())
		if _, err := svc.Create(ctx, validUpsert(), ""); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Event{ID: "ev-1", Title: "Old", OrganizerID: "user-1", IsPublic: true}

	t.Run("without permission returns ErrForbidden", func(t *testing.T) {
		repo := newFakeEventRepo(existing)
		svc := newEventServiceForTest(repo)
		err := svc.Update(ctx, "ev-1", validUpsert(), false)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if repo.updateCalls != 0 {
			t.Fatal("repository must not be touched without permission")
		}
	})

	t.Run("validation failure leaves the row untouched", func(t *testing.T) {
		repo := newFakeEventRepo(existing)
		svc := newEventServiceForTest(repo)
		in := validUpsert()
		in.CategoryIDs = []string{"cat-missing"}
		err := svc.Update(ctx, "ev-1", in, true)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if repo.updateCalls != 0 {
			t.Fatal("repository must not be touched when validation fails")
		}
	})

	t.Run("unknown event returns ErrNotFound", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newEventServiceForTest(repo)
		err := svc.Update(ctx, "ev-missing", validUpsert(), true)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		repo := newFakeEventRepo(existing)
		svc := newEventServiceForTest(repo)
		if err := svc.Update(ctx, "ev-1", validUpsert(), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updated == nil || repo.updated.ID != "ev-1" {
			t.Fatal("update did not reach the repository")
		}
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("without permission returns ErrForbidden", func(t *testing.T) {
		svc := newEventServiceForTest(newFakeEventRepo(&domain.Event{ID: "ev-1"}))
		if err := svc.Delete(ctx, "ev-1", false); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown event returns ErrNotFound", func(t *testing.T) {
		svc := newEventServiceForTest(newFakeEventRepo())
		if err := svc.Delete(ctx, "ev-missing", true); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		repo := newFakeEventRepo(&domain.Event{ID: "ev-1"})
		svc := newEventServiceForTest(repo)
		if err := svc.Delete(ctx, "ev-1", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := repo.byID["ev-1"]; ok {
			t.Fatal("event not deleted")
		}
	})
}

func TestEventService_ListByOrganizer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo(
		&domain.Event{ID: "ev-1", Title: "Mine", OrganizerID: "user-1"},
		&domain.Event{ID: "ev-2", Title: "Theirs", OrganizerID: "user-2"},
	)
	svc := newEventServiceForTest(repo)

	items, err := svc.ListByOrganizer(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Mine" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	items, err = svc.ListByOrganizer(ctx, "user-none")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
