// Package store defines the persistence interfaces for the portal and
// the sentinel errors shared by all implementations.
package store

import (
	"context"
	"errors"

	"github.com/pec-events/portal/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is full")

// Users provides read access to identity records plus the single
// mutation the portal allows on them.
type Users interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfilePicture(ctx context.Context, id, imageURL string) (*model.User, error)
}

// Events provides read access to the festival calendar. Events are
// reference data: created at bootstrap, never mutated.
type Events interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	ListByJudge(ctx context.Context, judgeID string) ([]model.Event, error)
}

// Registrations owns the registration records, the portal's single
// source of truth.
type Registrations interface {
	// Create appends a registration with the given status, enforcing the
	// event's capacity limit. The capacity check and the insert are one
	// atomic step; Create returns ErrEventFull when the count of active
	// registrations has already reached maxParticipants. A limit of zero
	// means unbounded.
	Create(ctx context.Context, eventID, studentID string, status model.RegistrationStatus, maxParticipants int) (*model.Registration, error)

	GetByID(ctx context.Context, id string) (*model.Registration, error)
	FindByEventAndStudent(ctx context.Context, eventID, studentID string) (*model.Registration, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Registration, error)
	// ListByEvent returns registrations for an event; when activeOnly is
	// set, only Approved and Registered records are included.
	ListByEvent(ctx context.Context, eventID string, activeOnly bool) ([]model.Registration, error)
	ListPending(ctx context.Context) ([]model.Registration, error)
	ListScored(ctx context.Context) ([]model.Registration, error)

	// SetStatus overwrites the status of a registration regardless of
	// its prior state. Returns ErrNotFound for an unknown id.
	SetStatus(ctx context.Context, id string, status model.RegistrationStatus) error
	// SetScore overwrites the score of a registration. Returns
	// ErrNotFound for an unknown id.
	SetScore(ctx context.Context, id string, score int) error
}

// Store bundles the three record collections behind one handle.
type Store interface {
	Users() Users
	Events() Events
	Registrations() Registrations
}
