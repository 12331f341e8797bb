// Package session scopes generated event sets to interactive dashboard
// sessions. Each session owns a private cache keyed by
// (region, date range); one session's data is never visible to another.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/geopredictor/geopredictor-api/internal/observability"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Store manages sessions and their dataset caches.
type Store struct {
	generator *domain.Generator
	exporter  domain.EventExporter // nil disables export
	clock     clockwork.Clock
	ttl       time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu       sync.Mutex
	datasets map[string]*domain.EventSet
	lastSeen time.Time
}

// NewStore creates a session store. Pass a nil exporter to disable
// event-set export.
func NewStore(generator *domain.Generator, exporter domain.EventExporter, clock clockwork.Clock, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Store {
	return &Store{
		generator: generator,
		exporter:  exporter,
		clock:     clock,
		ttl:       ttl,
		metrics:   metrics,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// Create registers a new session and returns its ID.
func (s *Store) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &session{
		datasets: make(map[string]*domain.EventSet),
		lastSeen: s.clock.Now(),
	}
	s.metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	s.logger.Info("session created", "session_id", id)
	return id
}

// Delete removes a session and its cached datasets.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EventSet returns the session's cached set for (region, start, end),
// generating and caching it on first access. Re-invocation with the same
// key returns the cached result, not a freshly sampled one.
func (s *Store) EventSet(ctx context.Context, sessionID, region string, start, end time.Time) (*domain.EventSet, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	key := domain.ScenarioKey(region, start, end)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if set, ok := sess.datasets[key]; ok {
		s.metrics.DatasetCache.WithLabelValues("hit").Inc()
		return set, nil
	}
	s.metrics.DatasetCache.WithLabelValues("miss").Inc()

	genStart := s.clock.Now()
	set, err := s.generator.Generate(region, start, end)
	if err != nil {
		return nil, err
	}
	s.metrics.GenerationDuration.Observe(s.clock.Since(genStart).Seconds())
	s.metrics.DatasetsGenerated.Inc()
	s.metrics.EventsGenerated.Add(float64(len(set.Records)))

	sess.datasets[key] = set
	s.export(ctx, set)
	return set, nil
}

// export publishes a freshly generated set. Failures are logged and
// counted, never surfaced to the interactive caller.
func (s *Store) export(ctx context.Context, set *domain.EventSet) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.ExportSet(ctx, set); err != nil {
		s.metrics.ExportsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("event set export failed", "key", set.Key(), "error", err)
		return
	}
	s.metrics.ExportsTotal.WithLabelValues("success").Inc()
	s.metrics.EventsExported.Add(float64(len(set.Records)))
}

// touch looks up a session and refreshes its idle timer.
func (s *Store) touch(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	sess.mu.Lock()
	sess.lastSeen = s.clock.Now()
	sess.mu.Unlock()
	return sess, nil
}

// RunJanitor evicts sessions idle longer than the TTL until the context
// is cancelled. Sweep interval is half the TTL.
func (s *Store) RunJanitor(ctx context.Context) {
	ticker := s.clock.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	cutoff := s.clock.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			s.metrics.SessionsExpired.Inc()
			s.logger.Info("session expired", "session_id", id)
		}
	}
	s.metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
