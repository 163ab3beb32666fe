package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/present-ai/internal/store"
)

// JanitorConfig holds configuration for the session janitor
type JanitorConfig struct {
	// TTL is how long a session may sit idle before it is evicted
	TTL time.Duration

	// CheckInterval defines how often to sweep for idle sessions.
	// If zero, defaults to one minute
	CheckInterval time.Duration
}

// DefaultJanitorConfig returns a JanitorConfig with reasonable defaults
func DefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{
		TTL:           2 * time.Hour,
		CheckInterval: time.Minute,
	}
}

// SessionJanitor periodically deletes idle sessions from a SessionStore
type SessionJanitor struct {
	store      store.SessionStore
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopOnce   sync.Once
	config     JanitorConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewSessionJanitor creates a new SessionJanitor
func NewSessionJanitor(sessions store.SessionStore, config JanitorConfig, logger *slog.Logger) *SessionJanitor {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &SessionJanitor{
		store:      sessions,
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "session_janitor"),
		now:        time.Now,
	}
}

// Start begins the periodic sweep in a background goroutine
func (j *SessionJanitor) Start() {
	j.wg.Add(1)
	go j.monitor()

	j.logger.Info("session janitor started",
		"ttl", j.config.TTL.String(),
		"check_interval", j.config.CheckInterval.String())
}

// Stop halts the sweep and waits for the background goroutine to exit.
// It is safe to call more than once.
func (j *SessionJanitor) Stop() {
	j.stopOnce.Do(func() {
		j.cancelFunc()
		j.wg.Wait()
		j.logger.Info("session janitor stopped")
	})
}

// Sweep deletes every session idle for longer than the TTL and returns how
// many were removed.
func (j *SessionJanitor) Sweep(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.config.TTL)

	removed, err := j.store.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "evicted idle sessions",
			"count", removed,
			"cutoff", cutoff)
	}

	return removed, nil
}

// monitor runs Sweep on every tick until the janitor is stopped
func (j *SessionJanitor) monitor() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			return

		case <-ticker.C:
			if _, err := j.Sweep(j.ctx); err != nil {
				j.logger.Error("failed to evict idle sessions", "error", err)
			}
		}
	}
}
