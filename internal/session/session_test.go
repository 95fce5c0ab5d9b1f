package session

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	apperrors "github.com/parkjy/idol-tycoon-go/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager(zap.NewNop())
}

func TestCreateStartsAtIntro(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	sess := m.Create("ko")
	state := sess.State()

	if state.Phase != domain.PhaseIntro {
		t.Fatalf("expected intro phase, got %s", state.Phase)
	}
	if state.Company.Money != constants.Company.InitialMoney {
		t.Fatalf("expected initial money, got %d", state.Company.Money)
	}
	if state.Turn != 1 {
		t.Fatalf("expected turn 1, got %d", state.Turn)
	}

	got, ok := m.Get(sess.ID)
	if !ok || got != sess {
		t.Fatal("expected the session to be retrievable by id")
	}
}

func TestBeginRejectsConcurrentTrigger(t *testing.T) {
	m := newTestManager()
	defer m.Close()
	sess := m.Create("ko")

	if _, err := sess.Begin(); err != nil {
		t.Fatalf("first claim must succeed, got %v", err)
	}

	_, err := sess.Begin()
	if err == nil {
		t.Fatal("expected second claim to be rejected")
	}
	var busy *apperrors.BusyError
	if !errors.As(err, &busy) {
		t.Fatalf("expected BusyError, got %T", err)
	}

	sess.Abort()
	if _, err := sess.Begin(); err != nil {
		t.Fatalf("expected claim to succeed after abort, got %v", err)
	}
}

func TestCommitReplacesState(t *testing.T) {
	m := newTestManager()
	defer m.Close()
	sess := m.Create("ko")

	before, err := sess.Begin()
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	phase := domain.PhaseCasting
	after := sess.Commit(&domain.Patch{Phase: &phase})

	if after == before {
		t.Fatal("commit must produce a fresh state value")
	}
	if after.Phase != domain.PhaseCasting {
		t.Fatalf("expected casting phase, got %s", after.Phase)
	}
	if sess.State() != after {
		t.Fatal("committed state must become the session state")
	}
	if _, err := sess.Begin(); err != nil {
		t.Fatalf("commit must release the claim, got %v", err)
	}
}

func TestReapDropsIdleSessions(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	idle := m.Create("ko")
	active := m.Create("en")
	if _, err := active.Begin(); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	m.reap(time.Now().Add(time.Second))

	if _, ok := m.Get(idle.ID); ok {
		t.Fatal("expected the idle session to be reaped")
	}
	if _, ok := m.Get(active.ID); !ok {
		t.Fatal("a claimed session must survive the sweep")
	}
	if m.Count() != 1 {
		t.Fatalf("expected one surviving session, got %d", m.Count())
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	sess := m.Create("ko")
	m.Remove(sess.ID)

	if _, ok := m.Get(sess.ID); ok {
		t.Fatal("expected the session to be gone")
	}
}
