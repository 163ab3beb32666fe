package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/mocks"
	"github.com/phrazzld/present-ai/internal/platform/logger"
	"github.com/phrazzld/present-ai/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const socksAndMug = `[
  {"name": "Socks", "appropriateness": "Always useful", "relation": "Runner", "priceRange": "10 EUR"},
  {"name": "Mug", "appropriateness": "Coffee", "relation": "Mornings", "priceRange": "15 EUR"}
]`

func sampleForm() domain.FormState {
	return domain.FormState{
		Name:         "Ana",
		Age:          "34",
		Gender:       "Female",
		Relationship: domain.Preset("Friend"),
		Hobbies:      "running",
		Personality:  domain.Custom("Night owl"),
		Budget:       "50",
		Currency:     "EUR",
		Occasion:     domain.Preset("Birthday"),
	}
}

type fixture struct {
	svc      GiftService
	sessions *memory.SessionStore
	gen      *mocks.MockGenerator
}

func newFixture(t *testing.T, gen *mocks.MockGenerator) fixture {
	t.Helper()
	l, _ := logger.NewTestLogger()
	sessions := memory.NewSessionStore(l)
	svc, err := NewGiftService(sessions, gen, generation.DefaultPromptBuilder(), l)
	require.NoError(t, err)
	return fixture{svc: svc, sessions: sessions, gen: gen}
}

func (f fixture) newSession(t *testing.T) uuid.UUID {
	t.Helper()
	session, err := f.svc.GetOrCreate(context.Background(), uuid.Nil)
	require.NoError(t, err)
	return session.ID
}

func TestNewGiftService_NilDependencies(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	sessions := memory.NewSessionStore(l)
	gen := &mocks.MockGenerator{}
	prompts := generation.DefaultPromptBuilder()

	tests := []struct {
		name string
		fn   func() (GiftService, error)
	}{
		{"nil sessions", func() (GiftService, error) { return NewGiftService(nil, gen, prompts, l) }},
		{"nil generator", func() (GiftService, error) { return NewGiftService(sessions, nil, prompts, l) }},
		{"nil prompts", func() (GiftService, error) { return NewGiftService(sessions, gen, nil, l) }},
		{"nil logger", func() (GiftService, error) { return NewGiftService(sessions, gen, prompts, nil) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := tc.fn()
			assert.Nil(t, svc)
			var svcErr *GiftServiceError
			assert.True(t, errors.As(err, &svcErr))
		})
	}
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &mocks.MockGenerator{})
	ctx := context.Background()

	created, err := f.svc.GetOrCreate(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.PhaseForm, created.Phase)

	again, err := f.svc.GetOrCreate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	unknown := uuid.New()
	fresh, err := f.svc.GetOrCreate(ctx, unknown)
	require.NoError(t, err)
	assert.NotEqual(t, unknown, fresh.ID, "unknown IDs are not adopted")
	assert.Equal(t, 2, f.sessions.Len())
}

func TestGetSession_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &mocks.MockGenerator{})

	_, err := f.svc.GetSession(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFindGiftIdeas_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mocks.NewMockGeneratorWithText(socksAndMug))
	id := f.newSession(t)

	session, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseResults, session.Phase)
	assert.Equal(t, 1, session.RequestCount)
	assert.Empty(t, session.Error)
	require.Len(t, session.Ideas, 2)
	assert.Equal(t, "Socks", session.Ideas[0].Name)
	assert.Equal(t, "Ana", session.Form.Name)

	prompt := f.gen.LastPrompt()
	assert.Contains(t, prompt, "Budget: 50 EUR")
	assert.Contains(t, prompt, "Personality: Night owl")
	assert.NotContains(t, prompt, "already been suggested")

	stored, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, session.Ideas, stored.Ideas)
}

func TestShowMore_ExcludesSeenIdeas(t *testing.T) {
	t.Parallel()

	replies := []string{
		socksAndMug,
		`[{"name": "socks", "appropriateness": "a", "relation": "b", "priceRange": "c"},
		  {"name": "Kite", "appropriateness": "a", "relation": "b", "priceRange": "c"}]`,
	}
	gen := &mocks.MockGenerator{}
	gen.GenerateTextFn = func(ctx context.Context, prompt string) (string, error) {
		return replies[gen.CallCount()-1], nil
	}
	f := newFixture(t, gen)
	id := f.newSession(t)

	_, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
	require.NoError(t, err)

	session, err := f.svc.ShowMore(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 2, session.RequestCount)
	require.Len(t, session.Ideas, 3)
	assert.Equal(t, "Kite", session.Ideas[2].Name)

	prompt := f.gen.LastPrompt()
	assert.Contains(t, prompt, "This is request #2.")
	assert.Contains(t, prompt, "socks, mug")
}

func TestShowMore_FromFormIsRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mocks.NewMockGeneratorWithText(socksAndMug))
	id := f.newSession(t)

	_, err := f.svc.ShowMore(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, f.gen.CallCount())
}

func TestFindGiftIdeas_GenerationFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mocks.MockGeneratorWithContentBlocked())
	id := f.newSession(t)

	session, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.Equal(t, domain.PhaseForm, session.Phase)
	assert.Equal(t, FailureMessage, session.Error)
	assert.Zero(t, session.RequestCount)
	assert.Empty(t, session.Ideas)
	assert.Equal(t, "Ana", session.Form.Name, "form is kept for another attempt")
}

func TestShowMore_FailureKeepsResults(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockGenerator{}
	gen.GenerateTextFn = func(ctx context.Context, prompt string) (string, error) {
		if gen.CallCount() == 1 {
			return socksAndMug, nil
		}
		return "", generation.ErrGenerationFailed
	}
	f := newFixture(t, gen)
	id := f.newSession(t)

	_, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
	require.NoError(t, err)

	session, err := f.svc.ShowMore(context.Background(), id)

	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.Equal(t, domain.PhaseResults, session.Phase)
	assert.Equal(t, FailureMessage, session.Error)
	assert.Len(t, session.Ideas, 2)
	assert.Equal(t, 1, session.RequestCount)
}

func TestFindGiftIdeas_EmptyReplyCountsAsRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mocks.NewMockGeneratorWithText(""))
	id := f.newSession(t)

	session, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseResults, session.Phase)
	assert.Empty(t, session.Ideas)
	assert.Equal(t, 1, session.RequestCount)
}

func TestFindGiftIdeas_PromptFailure(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	sessions := memory.NewSessionStore(l)
	gen := mocks.NewMockGeneratorWithText(socksAndMug)
	svc, err := NewGiftService(sessions, gen, failingPrompts{}, l)
	require.NoError(t, err)

	created, err := svc.GetOrCreate(context.Background(), uuid.Nil)
	require.NoError(t, err)

	session, err := svc.FindGiftIdeas(context.Background(), created.ID, sampleForm())

	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.Equal(t, FailureMessage, session.Error)
	assert.Zero(t, gen.CallCount())
}

type failingPrompts struct{}

func (failingPrompts) Build(generation.PromptRequest) (string, error) {
	return "", errors.New("template exploded")
}

// blockingGenerator parks inside GenerateText until released.
func blockingGenerator(text string) (*mocks.MockGenerator, chan struct{}, chan struct{}) {
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &mocks.MockGenerator{
		GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
			close(started)
			<-release
			return text, ctx.Err()
		},
	}
	return gen, started, release
}

func TestFindGiftIdeas_RejectsConcurrentRequest(t *testing.T) {
	t.Parallel()

	gen, started, release := blockingGenerator(socksAndMug)
	f := newFixture(t, gen)
	id := f.newSession(t)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
		done <- err
	}()
	<-started

	loading, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, loading.Loading())
	assert.Equal(t, domain.PhaseForm, loading.View())

	_, err = f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gen.CallCount())
}

func TestStartOver_DiscardsInFlightResult(t *testing.T) {
	t.Parallel()

	gen, started, release := blockingGenerator(socksAndMug)
	f := newFixture(t, gen)
	id := f.newSession(t)

	type result struct {
		session domain.Session
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
		done <- result{s, err}
	}()
	<-started

	reset, err := f.svc.StartOver(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseForm, reset.Phase)

	close(release)
	res := <-done

	assert.ErrorIs(t, res.err, domain.ErrStaleRequest)
	assert.Equal(t, domain.PhaseForm, res.session.Phase)
	assert.Empty(t, res.session.Ideas)
	assert.Zero(t, res.session.RequestCount)
	assert.True(t, res.session.Form.IsZero())
}

func TestFindGiftIdeas_IgnoresClientCancellation(t *testing.T) {
	t.Parallel()

	gen, started, release := blockingGenerator(socksAndMug)
	f := newFixture(t, gen)
	id := f.newSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.FindGiftIdeas(ctx, id, sampleForm())
		done <- err
	}()
	<-started
	cancel()
	close(release)

	require.NoError(t, <-done)
	session, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, session.Ideas, 2)
}

func TestStartOver(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mocks.NewMockGeneratorWithText(socksAndMug))
	id := f.newSession(t)
	_, err := f.svc.FindGiftIdeas(context.Background(), id, sampleForm())
	require.NoError(t, err)

	session, err := f.svc.StartOver(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, session.ID)
	assert.Equal(t, domain.PhaseForm, session.Phase)
	assert.Empty(t, session.Ideas)
	assert.Zero(t, session.RequestCount)
	assert.Empty(t, session.Error)
	assert.True(t, session.Form.IsZero())

	_, err = f.svc.StartOver(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFindGiftIdeas_StoreFailure(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	sessions := &mocks.TestifyMockSessionStore{}
	gen := mocks.NewMockGeneratorWithText(socksAndMug)
	svc, err := NewGiftService(sessions, gen, generation.DefaultPromptBuilder(), l)
	require.NoError(t, err)

	id := uuid.New()
	storeErr := errors.New("store unavailable")
	sessions.On("Update", mock.Anything, id, mock.Anything).Return(domain.Session{}, storeErr)

	_, err = svc.FindGiftIdeas(context.Background(), id, sampleForm())

	var svcErr *GiftServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "find_gift_ideas", svcErr.Operation)
	assert.ErrorIs(t, err, storeErr)
	assert.Zero(t, gen.CallCount())
	sessions.AssertExpectations(t)
}

func TestGetOrCreate_StoreFailure(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger()
	sessions := &mocks.TestifyMockSessionStore{}
	svc, err := NewGiftService(sessions, &mocks.MockGenerator{}, generation.DefaultPromptBuilder(), l)
	require.NoError(t, err)

	id := uuid.New()
	sessions.On("Get", mock.Anything, id).Return(nil, errors.New("disk on fire"))

	_, err = svc.GetOrCreate(context.Background(), id)

	assert.Error(t, err)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNewGiftServiceError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewGiftServiceError("op", "msg", nil))
	assert.Equal(t, domain.ErrRequestInFlight,
		NewGiftServiceError("op", "msg", errors.Join(errors.New("x"), domain.ErrRequestInFlight)))

	err := NewGiftServiceError("find_gift_ideas", "generation failed", generation.ErrGenerationFailed)
	assert.EqualError(t, err, "gift service find_gift_ideas failed: generation failed: failed to generate gift ideas")
}
