package domain

import (
	"context"
	"iter"
	"time"
)

// Event is a scheduled occurrence at a venue, owned by an organizer.
// Start/end instants are stored UTC-normalized; capacity is bounded by the
// venue's capacity.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartUTC    time.Time `json:"start_utc"`
	EndUTC      time.Time `json:"end_utc"`
	Capacity    int       `json:"capacity"`
	IsPublic    bool      `json:"is_public"`
	VenueID     string    `json:"venue_id"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventSort selects the ordering of public event listings.
type EventSort string

const (
	// SortPopular orders by active (non-cancelled) registration count
	// descending, ties broken by start time ascending.
	SortPopular EventSort = "popular"
	// SortSoon orders by start time ascending.
	SortSoon EventSort = "soon"
	// SortNewest is the default: start time descending.
	SortNewest EventSort = "newest"
)

// PublicEventFilter narrows a public event listing. Zero values mean
// "no filter". Search and City match case-insensitive substrings.
type PublicEventFilter struct {
	Search     string
	City       string
	CategoryID string
	Sort       EventSort
}

// EventListItem is a summary row for event listings.
// swagger:model EventListItem
type EventListItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartUTC        time.Time `json:"start_utc"`
	EndUTC          time.Time `json:"end_utc"`
	City            string    `json:"city"`
	VenueName       string    `json:"venue_name"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registered_count"`
	IsPublic        bool      `json:"is_public"`
}

// EventDetails is the full detail projection of a single event with venue
// fields denormalized, sorted category/tag name lists, and the live count
// of non-cancelled registrations.
// swagger:model EventDetails
type EventDetails struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	StartUTC        time.Time `json:"start_utc"`
	EndUTC          time.Time `json:"end_utc"`
	Capacity        int       `json:"capacity"`
	IsPublic        bool      `json:"is_public"`
	VenueID         string    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueAddress    string    `json:"venue_address"`
	VenueCity       string    `json:"venue_city"`
	VenueCapacity   int       `json:"venue_capacity"`
	OrganizerID     string    `json:"organizer_id"`
	Categories      []string  `json:"categories"`
	Tags            []string  `json:"tags"`
	RegisteredCount int       `json:"registered_count"`
}

// EventUpsert carries the caller-supplied fields for creating or updating
// an event. CategoryIDs/TagIDs replace the association sets wholesale.
type EventUpsert struct {
	Title       string
	Description *string
	StartUTC    time.Time
	EndUTC      time.Time
	Capacity    int
	IsPublic    bool
	VenueID     string
	CategoryIDs []string
	TagIDs      []string
}

// EventRepository defines storage for events and their category/tag
// association sets. Create and Update write the event row and its
// association rows in a single transaction; Update replaces the sets
// (delete then reinsert), never patches them.
type EventRepository interface {
	Create(ctx context.Context, e *Event, categoryIDs, tagIDs []string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetDetails(ctx context.Context, id string) (*EventDetails, error)
	Update(ctx context.Context, e *Event, categoryIDs, tagIDs []string) error
	// Delete removes the event; association and registration rows cascade.
	Delete(ctx context.Context, id string) error
	// ListPublic streams summary rows lazily. The sequence is finite and
	// single-use; iteration stops early when the consumer breaks.
	ListPublic(ctx context.Context, f PublicEventFilter) iter.Seq2[*EventListItem, error]
	// ListByOrganizer returns the organizer's events, newest start first.
	ListByOrganizer(ctx context.Context, organizerID string) ([]*EventListItem, error)
}

// EventService defines catalog operations. Authorization for update/delete
// is resolved by the caller and passed in as a boolean.
type EventService interface {
	ListPublic(ctx context.Context, f PublicEventFilter) iter.Seq2[*EventListItem, error]
	// GetDetails does not filter by visibility; callers enforce who may see
	// a private event.
	GetDetails(ctx context.Context, id string) (*EventDetails, error)
	Create(ctx context.Context, in EventUpsert, organizerID string) (string, error)
	Update(ctx context.Context, id string, in EventUpsert, canEdit bool) error
	Delete(ctx context.Context, id string, canDelete bool) error
	ListByOrganizer(ctx context.Context, organizerID string) ([]*EventListItem, error)
}
