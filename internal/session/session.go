package session

import (
	"sync"
	"time"

	"github.com/parkjy/idol-tycoon-go/internal/domain"
	apperrors "github.com/parkjy/idol-tycoon-go/pkg/errors"
)

// Session owns the authoritative game state for one connected player. All
// reads and writes go through it; the state pointer it hands out is treated
// as immutable and replaced wholesale on commit.
type Session struct {
	ID string

	mu       sync.Mutex
	state    *domain.GameState
	busy     bool
	lastSeen time.Time
}

func newSession(id string, state *domain.GameState) *Session {
	return &Session{
		ID:       id,
		state:    state,
		lastSeen: time.Now(),
	}
}

// State returns the current state snapshot without claiming the session.
func (s *Session) State() *domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin claims the session for a single trigger and returns the state the
// trigger resolves against. While claimed, further triggers are rejected
// instead of queued. Every Begin must be paired with Commit or Abort.
func (s *Session) Begin() (*domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return nil, apperrors.NewBusyError(s.ID)
	}
	s.busy = true
	s.lastSeen = time.Now()
	return s.state, nil
}

// Commit applies the patch produced by a trigger and releases the claim.
// A nil patch releases the claim without changing state.
func (s *Session) Commit(patch *domain.Patch) *domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch != nil {
		s.state = patch.Apply(s.state)
	}
	s.busy = false
	s.lastSeen = time.Now()
	return s.state
}

// Abort releases the claim after a rejected or failed trigger.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy && s.lastSeen.Before(cutoff)
}
