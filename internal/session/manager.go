package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

// Manager tracks live sessions and reaps the ones that went quiet.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	logger *zap.Logger
	stop   chan struct{}
	once   sync.Once
}

func NewManager(logger *zap.Logger) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go m.reapLoop()
	return m
}

// Create starts a fresh playthrough in the intro phase and registers it.
func (m *Manager) Create(locale string) *Session {
	state := domain.NewGameState(
		constants.Company.InitialMoney,
		constants.Company.InitialReputation,
		constants.Company.InitialFanCount,
		locale,
	)
	sess := newSession(uuid.NewString(), state)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("locale", locale))
	return sess
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the reaper. Safe to call more than once.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Manager) reapLoop() {
	ticker := time.NewTicker(constants.Session.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.reap(time.Now().Add(-constants.Session.IdleTTL))
		}
	}
}

func (m *Manager) reap(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if sess.idleSince(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("Idle session reaped", zap.String("session_id", id))
		}
	}
}
