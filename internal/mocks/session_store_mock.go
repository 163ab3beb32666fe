package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockSessionStore is a mock of store.SessionStore interface for use with testify/mock
type TestifyMockSessionStore struct {
	mock.Mock
}

var _ store.SessionStore = (*TestifyMockSessionStore)(nil)

// Create is a mock implementation of store.SessionStore.Create
func (m *TestifyMockSessionStore) Create(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// Get is a mock implementation of store.SessionStore.Get
func (m *TestifyMockSessionStore) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	args := m.Called(ctx, id)
	if session, ok := args.Get(0).(domain.Session); ok {
		return session, args.Error(1)
	}
	return domain.Session{}, args.Error(1)
}

// Update is a mock implementation of store.SessionStore.Update
func (m *TestifyMockSessionStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(domain.Session) (domain.Session, error),
) (domain.Session, error) {
	args := m.Called(ctx, id, fn)
	if session, ok := args.Get(0).(domain.Session); ok {
		return session, args.Error(1)
	}
	return domain.Session{}, args.Error(1)
}

// Delete is a mock implementation of store.SessionStore.Delete
func (m *TestifyMockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteIdleSince is a mock implementation of store.SessionStore.DeleteIdleSince
func (m *TestifyMockSessionStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}
