package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/store"
)

// SessionStore implements store.SessionStore with a mutex-guarded map.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
	logger   *slog.Logger
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty session store.
func NewSessionStore(logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		sessions: make(map[uuid.UUID]domain.Session),
		logger:   logger.With(slog.String("component", "session_store")),
	}
}

// Create implements store.SessionStore.
func (s *SessionStore) Create(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return store.ErrSessionExists
	}
	s.sessions[session.ID] = session

	s.logger.DebugContext(ctx, "session created", slog.String("session_id", session.ID.String()))
	return nil
}

// Get implements store.SessionStore.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

// Update implements store.SessionStore. fn runs under the store lock, so
// it must not block.
func (s *SessionStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(domain.Session) (domain.Session, error),
) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, store.ErrSessionNotFound
	}

	next, err := fn(current)
	if err != nil {
		return current, store.NewStoreError("session", "update", "update rejected",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, err))
	}
	if next.ID != id {
		return current, store.NewStoreError("session", "update", "session ID changed", store.ErrUpdateFailed)
	}

	s.sessions[id] = next
	return next, nil
}

// Delete implements store.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// DeleteIdleSince implements store.SessionStore. Sessions with a request
// in flight are kept regardless of age.
func (s *SessionStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.Loading() || !session.UpdatedAt.Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		removed++
	}

	if removed > 0 {
		s.logger.InfoContext(ctx, "expired sessions removed",
			slog.Int("removed", removed),
			slog.Int("remaining", len(s.sessions)))
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
