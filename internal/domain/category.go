package domain

import "context"

// Category classifies events. Names are unique, case-sensitive.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines storage for categories.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	// Create inserts the category. Returns ErrConflict for a duplicate name.
	Create(ctx context.Context, c *Category) error
	// Update renames the category. Returns ErrConflict when another row
	// already carries the name; renaming to the current name succeeds.
	Update(ctx context.Context, c *Category) error
	// Delete removes the category; event associations cascade away.
	Delete(ctx context.Context, id string) error
}
