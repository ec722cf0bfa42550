package domain

import "context"

// LookupService defines admin operations on reference data: venues,
// categories, and tags. Authorization (is the caller an admin) is decided
// by the delivery layer before any of these are invoked.
type LookupService interface {
	ListVenues(ctx context.Context) ([]*Venue, error)
	CreateVenue(ctx context.Context, name, address, city string, capacity int) (string, error)
	UpdateVenue(ctx context.Context, id, name, address, city string, capacity int) error
	DeleteVenue(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, name string) (string, error)
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]*Tag, error)
	CreateTag(ctx context.Context, name string) (string, error)
	UpdateTag(ctx context.Context, id, name string) error
	DeleteTag(ctx context.Context, id string) error
}
