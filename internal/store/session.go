package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/domain"
)

// SessionStore keeps visitor sessions between requests.
type SessionStore interface {
	// Create stores a new session. It returns ErrSessionExists if the ID is taken.
	Create(ctx context.Context, session domain.Session) error

	// Get returns the session with the given ID or ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// Update applies fn to the stored session atomically with respect to
	// other Update calls for the same ID. If fn returns an error nothing is
	// stored and the error is returned wrapped in a StoreError.
	Update(
		ctx context.Context,
		id uuid.UUID,
		fn func(domain.Session) (domain.Session, error),
	) (domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdleSince removes sessions not updated since cutoff and reports
	// how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}
