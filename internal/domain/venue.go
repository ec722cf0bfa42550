package domain

import "context"

// Venue is a place events are held at. Events reference a venue by id; the
// venue's capacity is the upper bound for any event hosted there.
// swagger:model Venue
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

// VenueRepository defines storage for venues.
type VenueRepository interface {
	// List returns all venues ordered by city, then name.
	List(ctx context.Context) ([]*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	Create(ctx context.Context, v *Venue) error
	Update(ctx context.Context, v *Venue) error
	// Delete removes the venue. Returns ErrConflict while any event still
	// references it (ON DELETE RESTRICT) and ErrNotFound for an unknown id.
	Delete(ctx context.Context, id string) error
}
