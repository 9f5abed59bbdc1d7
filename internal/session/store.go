package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

// Store manages sessions keyed by ID with idle TTL eviction
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
	logger   *errors.Logger
}

// NewStore creates a session store. Sessions idle longer than ttl are
// discarded by a background sweep.
func NewStore(ttl time.Duration, logger *errors.Logger) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go s.sweepRoutine(10 * time.Minute)
	return s
}

// Create stores a new session for the given record and returns it
func (st *Store) Create(record cv.Record) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Record:    cv.Normalize(record),
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	if st.logger != nil {
		st.logger.Debug("Session created", "session_id", sess.ID)
	}
	return sess
}

// Get returns the session for id, or an error when unknown or expired
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, NotFoundError(id)
	}
	return sess, nil
}

// Delete discards the session for id, false when unknown
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// GetStats returns current session store statistics
func (st *Store) GetStats() map[string]any {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return map[string]any{
		"active_sessions": len(st.sessions),
		"ttl_seconds":     st.ttl.Seconds(),
	}
}

// sweepRoutine periodically removes idle sessions
func (st *Store) sweepRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.sweep()
		case <-st.done:
			return
		}
	}
}

// sweep removes sessions idle past the TTL
func (st *Store) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for id, sess := range st.sessions {
		if now.Sub(sess.lastUpdated()) > st.ttl {
			delete(st.sessions, id)
		}
	}

	if st.logger != nil {
		st.logger.Debug("Session sweep completed",
			"remaining_sessions", len(st.sessions))
	}
}

// Close stops the sweep goroutine. Should be called when shutting down the server.
func (st *Store) Close() {
	close(st.done)
}
