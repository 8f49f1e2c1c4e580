// Package session keeps per-chat conversation state in memory. State is
// transient by design: a restart drops in-progress drafts and the user
// simply starts over.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
)

// DefaultTTL is how long an untouched session survives before the janitor
// collects it.
const DefaultTTL = 30 * time.Minute

// Session is one chat's conversation state.
type Session struct {
	Step  domain.Step
	Draft *domain.ListingDraft

	// Search flow scratch space.
	SearchRegion string

	// Listing id an admin is writing decline feedback for, with the
	// review-card message to retire once the decision lands.
	ReviewListingID int64
	ReviewMessageID int

	UpdatedAt time.Time
}

// Store is a TTL-bounded map of chat id to session.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewStore creates a session store. A ttl of zero means DefaultTTL.
func NewStore(ttl time.Duration, baseLogger *zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		log:      baseLogger.With().Str("component", "session_store").Logger(),
		now:      time.Now,
	}
}

// Get returns the chat's session, creating an empty one if none exists or
// the existing one has expired.
func (s *Store) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[chatID]
	if !ok || now.Sub(sess.UpdatedAt) > s.ttl {
		sess = &Session{Step: domain.StepNone}
	}
	sess.UpdatedAt = now
	s.sessions[chatID] = sess
	return sess
}

// Put stores the session back, refreshing its TTL.
func (s *Store) Put(chatID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = s.now()
	s.sessions[chatID] = sess
}

// Clear drops the chat's session entirely.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// StartJanitor sweeps expired sessions until ctx is done.
func (s *Store) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for chatID, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, chatID)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("Swept expired sessions")
	}
}
