// Package memory implements the in-process, session-scoped history store.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitplanner/internal/domain"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// ErrNoSession is returned when an empty session id is used.
var ErrNoSession = errors.New("session id is required")

// Store keeps one domain.History per session. Sessions expire after the
// configured idle TTL, which destroys their history.
type Store struct {
	mu       sync.Mutex
	sessions *cache.Cache
	gauge    Gauge
}

// Gauge receives the live session count.
type Gauge interface {
	Set(float64)
}

// Ensure interfaces are met.
var _ domain.HistoryRepository = (*Store)(nil)

// New creates a store whose sessions live for ttl after their last write.
// A non-positive ttl keeps sessions until EndSession is called.
func New(ttl time.Duration) *Store {
	exp, cleanup := ttl, ttl/2
	if ttl <= 0 {
		exp, cleanup = cache.NoExpiration, 0
	}
	s := &Store{sessions: cache.New(exp, cleanup)}
	s.sessions.OnEvicted(func(sessionID string, v interface{}) {
		if h, ok := v.(*domain.History); ok {
			log.Debugf("session [%s] ended, dropping %d plans", sessionID, h.Len())
		}
		s.reportCount()
	})
	return s
}

// WithGauge publishes the live session count to g.
func (s *Store) WithGauge(g Gauge) *Store {
	s.gauge = g
	return s
}

// AppendPlan adds p to the session history and returns its 1-based position.
func (s *Store) AppendPlan(ctx context.Context, sessionID string, p domain.Plan) (int, error) {
	if sessionID == "" {
		return 0, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.history(sessionID)
	if h == nil {
		h = &domain.History{}
	}
	pos := h.Append(p)
	// re-set to slide the expiry window
	s.sessions.SetDefault(sessionID, h)
	s.reportCount()
	return pos, nil
}

// ListPlans returns the session history in insertion order.
func (s *Store) ListPlans(ctx context.Context, sessionID string) ([]domain.Plan, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.history(sessionID)
	if h == nil {
		return []domain.Plan{}, nil
	}
	return h.Plans(), nil
}

// EndSession drops the session and its history.
func (s *Store) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Delete(sessionID)
	return nil
}

// SessionCount returns the number of live sessions.
func (s *Store) SessionCount() int {
	return s.sessions.ItemCount()
}

func (s *Store) reportCount() {
	if s.gauge != nil {
		s.gauge.Set(float64(s.sessions.ItemCount()))
	}
}

func (s *Store) history(sessionID string) *domain.History {
	v, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil
	}
	h, _ := v.(*domain.History)
	return h
}
