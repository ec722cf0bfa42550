package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration.
// Transitions: Pending→Approved, Pending→Cancelled, Approved→Cancelled,
// and Cancelled→Pending when a user re-registers.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusApproved  RegistrationStatus = "approved"
	StatusCancelled RegistrationStatus = "cancelled"
)

// Registration is a user's claim on one seat at an event. At most one
// non-cancelled registration exists per (event, user) pair; the store keeps
// a single row per pair, so re-registering after a cancel reactivates the
// existing row.
// swagger:model Registration
type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	RegisteredAt time.Time          `json:"registered_at"`
	Status       RegistrationStatus `json:"status"`
}

// RegistrationItem is the listing projection of a registration with event
// fields denormalized.
// swagger:model RegistrationItem
type RegistrationItem struct {
	ID            string             `json:"id"`
	EventID       string             `json:"event_id"`
	EventTitle    string             `json:"event_title"`
	EventStartUTC time.Time          `json:"event_start_utc"`
	RegisteredAt  time.Time          `json:"registered_at"`
	Status        RegistrationStatus `json:"status"`
}

// RegistrationRepository defines storage for registrations. Register and
// Approve run as a single transaction that locks the event row before the
// capacity count, so concurrent attempts on one event serialize and cannot
// jointly exceed capacity.
type RegistrationRepository interface {
	// Register creates a Pending registration, reactivating a cancelled row
	// for the pair when one exists. Fails with ErrNotFound (no such event),
	// ErrForbidden (event not public), ErrConflict (active registration
	// already exists), or ErrEventFull (capacity reached).
	Register(ctx context.Context, eventID, userID string, now time.Time) (*Registration, error)
	// Cancel sets the pair's registration to Cancelled regardless of its
	// current status. ErrNotFound when no row exists for the pair.
	Cancel(ctx context.Context, eventID, userID string) error
	// Approve moves a registration to Approved. Fails with ErrNotFound,
	// ErrInvalidInput (registration is cancelled), or ErrEventFull (the
	// event's active count already exceeds its capacity).
	Approve(ctx context.Context, registrationID string) (*Registration, error)
	// ListByUserID returns the user's registrations, newest-registered first.
	ListByUserID(ctx context.Context, userID string) ([]*RegistrationItem, error)
	// ListByEventID returns one page of the event's registrations,
	// newest-registered first, plus the total row count.
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*RegistrationItem, int, error)
}

// RegistrationService defines attendee and admin registration operations.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string) (*Registration, error)
	Cancel(ctx context.Context, eventID, userID string) error
	Approve(ctx context.Context, registrationID string) (*Registration, error)
	ListMine(ctx context.Context, userID string) ([]*RegistrationItem, error)
	ListForEvent(ctx context.Context, eventID string, params PaginationParams) ([]*RegistrationItem, int, error)
}
