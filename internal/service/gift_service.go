package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/present-ai/internal/domain"
	"github.com/phrazzld/present-ai/internal/generation"
	"github.com/phrazzld/present-ai/internal/platform/logger"
	"github.com/phrazzld/present-ai/internal/store"
)

// PromptBuilder renders the prompt for one generation.
// *generation.PromptBuilder satisfies it.
type PromptBuilder interface {
	Build(req generation.PromptRequest) (string, error)
}

// GiftService provides the gift idea use cases for one visitor session.
type GiftService interface {
	// GetOrCreate returns the session with the given ID. A missing or nil ID
	// yields a fresh session under a newly generated ID.
	GetOrCreate(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// GetSession returns the session with the given ID.
	GetSession(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// FindGiftIdeas stores form and runs the first generation. On a model
	// failure the returned session carries the user-visible error and the
	// returned error wraps generation.ErrGenerationFailed.
	FindGiftIdeas(ctx context.Context, id uuid.UUID, form domain.FormState) (domain.Session, error)

	// ShowMore runs a follow-up generation that excludes every idea already shown.
	ShowMore(ctx context.Context, id uuid.UUID) (domain.Session, error)

	// StartOver clears the form and every accumulated idea.
	StartOver(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// giftServiceImpl implements the GiftService interface
type giftServiceImpl struct {
	sessions  store.SessionStore
	generator generation.Generator
	prompts   PromptBuilder
	logger    *slog.Logger
	now       func() time.Time
}

// NewGiftService creates a new GiftService.
// It returns an error if any of the required dependencies are nil.
func NewGiftService(
	sessions store.SessionStore,
	generator generation.Generator,
	prompts PromptBuilder,
	logger *slog.Logger,
) (GiftService, error) {
	if sessions == nil {
		return nil, &GiftServiceError{Operation: "create_service", Message: "sessions cannot be nil"}
	}
	if generator == nil {
		return nil, &GiftServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if prompts == nil {
		return nil, &GiftServiceError{Operation: "create_service", Message: "prompts cannot be nil"}
	}
	if logger == nil {
		return nil, &GiftServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &giftServiceImpl{
		sessions:  sessions,
		generator: generator,
		prompts:   prompts,
		logger:    logger.With(slog.String("component", "gift_service")),
		now:       time.Now,
	}, nil
}

// GetOrCreate implements GiftService.
func (s *giftServiceImpl) GetOrCreate(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	if id != uuid.Nil {
		session, err := s.sessions.Get(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, store.ErrSessionNotFound) {
			return domain.Session{}, NewGiftServiceError("get_or_create", "failed to load session", err)
		}
	}

	session := domain.NewSession(uuid.New(), s.now())
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Session{}, NewGiftServiceError("get_or_create", "failed to create session", err)
	}

	s.log(ctx).DebugContext(ctx, "session started", slog.String("session_id", session.ID.String()))
	return session, nil
}

// GetSession implements GiftService.
func (s *giftServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, NewGiftServiceError("get_session", "failed to load session", err)
	}
	return session, nil
}

// FindGiftIdeas implements GiftService.
func (s *giftServiceImpl) FindGiftIdeas(
	ctx context.Context,
	id uuid.UUID,
	form domain.FormState,
) (domain.Session, error) {
	return s.generate(ctx, id, "find_gift_ideas", false,
		func(cur domain.Session, token uuid.UUID, now time.Time) (domain.Session, error) {
			return cur.BeginSearch(form, token, now)
		})
}

// ShowMore implements GiftService.
func (s *giftServiceImpl) ShowMore(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return s.generate(ctx, id, "show_more", true,
		func(cur domain.Session, token uuid.UUID, now time.Time) (domain.Session, error) {
			return cur.BeginShowMore(token, now)
		})
}

// StartOver implements GiftService.
func (s *giftServiceImpl) StartOver(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	session, err := s.sessions.Update(ctx, id, func(cur domain.Session) (domain.Session, error) {
		return cur.Reset(s.now()), nil
	})
	if err != nil {
		return domain.Session{}, NewGiftServiceError("start_over", "failed to reset session", err)
	}

	s.log(ctx).InfoContext(ctx, "session reset", slog.String("session_id", id.String()))
	return session, nil
}

type beginFunc func(cur domain.Session, token uuid.UUID, now time.Time) (domain.Session, error)

// generate runs one request cycle: begin under the store lock, call the
// model without holding it, then complete or fail under the lock again.
func (s *giftServiceImpl) generate(
	ctx context.Context,
	id uuid.UUID,
	operation string,
	followUp bool,
	begin beginFunc,
) (domain.Session, error) {
	log := s.log(ctx).With(
		slog.String("session_id", id.String()),
		slog.String("operation", operation),
	)

	token := uuid.New()
	started, err := s.sessions.Update(ctx, id, func(cur domain.Session) (domain.Session, error) {
		return begin(cur, token, s.now())
	})
	if err != nil {
		log.WarnContext(ctx, "generation not started", slog.String("error", err.Error()))
		return domain.Session{}, NewGiftServiceError(operation, "failed to start generation", err)
	}

	// The model call outlives a client that navigates away; its result
	// still belongs to the session.
	genCtx := context.WithoutCancel(ctx)

	ideas, err := s.requestIdeas(genCtx, log, started, followUp)
	if err != nil {
		log.ErrorContext(ctx, "gift idea generation failed", slog.String("error", err.Error()))
		failed, failErr := s.sessions.Update(genCtx, id, func(cur domain.Session) (domain.Session, error) {
			return cur.Fail(token, FailureMessage, s.now())
		})
		if failErr != nil {
			return s.settleStale(genCtx, log, id, operation, failErr)
		}
		return failed, NewGiftServiceError(operation, "generation failed", err)
	}

	completed, err := s.sessions.Update(genCtx, id, func(cur domain.Session) (domain.Session, error) {
		return cur.Complete(token, ideas, s.now())
	})
	if err != nil {
		return s.settleStale(genCtx, log, id, operation, err)
	}

	log.InfoContext(ctx, "gift ideas added",
		slog.Int("returned", len(ideas)),
		slog.Int("accumulated", len(completed.Ideas)),
		slog.Int("request_count", completed.RequestCount))
	return completed, nil
}

// requestIdeas builds the prompt for started and parses the model's reply.
func (s *giftServiceImpl) requestIdeas(
	ctx context.Context,
	log *slog.Logger,
	started domain.Session,
	followUp bool,
) ([]domain.GiftIdea, error) {
	prompt, err := s.prompts.Build(generation.PromptRequest{
		Form:     started.Form,
		Seen:     started.SeenNames(),
		FollowUp: followUp,
		Ordinal:  started.NextOrdinal(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		if !errors.Is(err, generation.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
		}
		return nil, err
	}

	ideas, strategy := generation.Parse(text)
	log.DebugContext(ctx, "model reply parsed",
		slog.String("strategy", strategy),
		slog.Int("ideas", len(ideas)))
	return ideas, nil
}

// settleStale handles a completion the session no longer waits for, which
// happens when the visitor started over while the model was working.
func (s *giftServiceImpl) settleStale(
	ctx context.Context,
	log *slog.Logger,
	id uuid.UUID,
	operation string,
	err error,
) (domain.Session, error) {
	if errors.Is(err, domain.ErrStaleRequest) {
		log.InfoContext(ctx, "discarding result of superseded request")
	} else {
		log.ErrorContext(ctx, "failed to store generation result", slog.String("error", err.Error()))
	}

	current, getErr := s.sessions.Get(ctx, id)
	if getErr != nil {
		return domain.Session{}, NewGiftServiceError(operation, "failed to load session", getErr)
	}
	return current, NewGiftServiceError(operation, "failed to store generation result", err)
}

func (s *giftServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
