// Package service implements the portal's domain logic: registration,
// approval, scoring, standings, and the read-side queries behind the
// dashboards.
package service

import (
	"errors"
	"log/slog"

	"github.com/pec-events/portal/internal/auth"
	"github.com/pec-events/portal/internal/messaging"
	"github.com/pec-events/portal/internal/store"
)

// ErrInvalidCredentials is returned when login fails, whether the email
// is unknown or the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Portal orchestrates all domain operations over the injected store.
type Portal struct {
	store     store.Store
	tokens    *auth.Tokens
	publisher messaging.Publisher
	logger    *slog.Logger
}

// NewPortal constructs a Portal with its dependencies. A nil publisher
// falls back to the no-op one.
func NewPortal(st store.Store, tokens *auth.Tokens, publisher messaging.Publisher, logger *slog.Logger) *Portal {
	if publisher == nil {
		publisher = messaging.Noop{}
	}
	return &Portal{
		store:     st,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}
