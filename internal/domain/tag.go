package domain

import "context"

// Tag is a free-form label attached to events. Names are unique,
// case-sensitive.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags.
type TagRepository interface {
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]*Tag, error)
	GetByID(ctx context.Context, id string) (*Tag, error)
	// Create inserts the tag. Returns ErrConflict for a duplicate name.
	Create(ctx context.Context, t *Tag) error
	// Update renames the tag. Returns ErrConflict when another row already
	// carries the name; renaming to the current name succeeds.
	Update(ctx context.Context, t *Tag) error
	// Delete removes the tag; event associations cascade away.
	Delete(ctx context.Context, id string) error
}
