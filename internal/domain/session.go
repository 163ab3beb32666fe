package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the state of a session's UI.
type Phase string

// Possible session phases.
const (
	PhaseForm    Phase = "form"
	PhaseLoading Phase = "loading"
	PhaseResults Phase = "results"
)

// Session is the complete UI state of one visitor: the form, the ideas
// accumulated so far, and where the page is in the request cycle.
//
// Session values are never mutated in place; every transition returns a
// copy. Ideas is append-only between resets and its names are unique
// case-insensitively.
type Session struct {
	ID           uuid.UUID
	Form         FormState
	Ideas        []GiftIdea
	RequestCount int
	Phase        Phase
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// pending identifies the generation the session is waiting for.
	pending uuid.UUID
	// resume is the phase to return to when the pending request fails.
	resume Phase
}

// NewSession returns an empty session showing the form.
func NewSession(id uuid.UUID, now time.Time) Session {
	return Session{
		ID:        id,
		Phase:     PhaseForm,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// View returns the phase the page should render. While loading it is the
// phase the request started from.
func (s Session) View() Phase {
	if s.Phase == PhaseLoading {
		return s.resume
	}
	return s.Phase
}

// Loading reports whether a generation is in flight.
func (s Session) Loading() bool {
	return s.Phase == PhaseLoading
}

// Pending returns the token of the in-flight request, or uuid.Nil.
func (s Session) Pending() uuid.UUID {
	return s.pending
}

// NextOrdinal is the request number the next generation will carry.
func (s Session) NextOrdinal() int {
	return s.RequestCount + 1
}

// SeenNames returns the lowercase names of every accumulated idea, in order.
func (s Session) SeenNames() []string {
	names := make([]string, 0, len(s.Ideas))
	for _, idea := range s.Ideas {
		names = append(names, idea.Key())
	}
	return names
}

// BeginSearch stores the submitted form and starts the first generation.
func (s Session) BeginSearch(form FormState, token uuid.UUID, now time.Time) (Session, error) {
	if s.Phase == PhaseLoading {
		return s, ErrRequestInFlight
	}
	if s.Phase != PhaseForm {
		return s, ErrInvalidTransition
	}
	next := s.begin(token, now)
	next.Form = form
	return next, nil
}

// BeginShowMore starts a follow-up generation that excludes earlier ideas.
func (s Session) BeginShowMore(token uuid.UUID, now time.Time) (Session, error) {
	if s.Phase == PhaseLoading {
		return s, ErrRequestInFlight
	}
	if s.Phase != PhaseResults {
		return s, ErrInvalidTransition
	}
	return s.begin(token, now), nil
}

func (s Session) begin(token uuid.UUID, now time.Time) Session {
	next := s
	next.resume = s.Phase
	next.Phase = PhaseLoading
	next.Error = ""
	next.pending = token
	next.UpdatedAt = now
	return next
}

// Complete appends the ideas not seen before and shows the results. The
// request counter advances even when every idea was a duplicate.
func (s Session) Complete(token uuid.UUID, ideas []GiftIdea, now time.Time) (Session, error) {
	if s.Phase != PhaseLoading || s.pending != token {
		return s, ErrStaleRequest
	}

	seen := SeenNames(s.Ideas)
	fresh := make([]GiftIdea, 0, len(ideas))
	for _, idea := range FilterUnseen(ideas, seen) {
		if _, dup := seen[idea.Key()]; dup {
			continue
		}
		seen[idea.Key()] = struct{}{}
		fresh = append(fresh, idea)
	}

	next := s
	next.Ideas = make([]GiftIdea, 0, len(s.Ideas)+len(fresh))
	next.Ideas = append(next.Ideas, s.Ideas...)
	next.Ideas = append(next.Ideas, fresh...)
	next.RequestCount = s.RequestCount + 1
	next.Phase = PhaseResults
	next.pending = uuid.Nil
	next.resume = ""
	next.UpdatedAt = now
	return next, nil
}

// Fail returns to the phase the request started from and records message.
// Ideas and the request counter are left untouched.
func (s Session) Fail(token uuid.UUID, message string, now time.Time) (Session, error) {
	if s.Phase != PhaseLoading || s.pending != token {
		return s, ErrStaleRequest
	}
	next := s
	next.Phase = s.resume
	next.Error = message
	next.pending = uuid.Nil
	next.resume = ""
	next.UpdatedAt = now
	return next, nil
}

// Reset clears the form and every accumulated idea. An in-flight request
// becomes stale and its result will be dropped.
func (s Session) Reset(now time.Time) Session {
	next := NewSession(s.ID, s.CreatedAt)
	next.UpdatedAt = now
	return next
}
