package records

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

type fakeStore struct {
	saved   []*RunRecord
	saveErr error
	top     []*RunRecord
	topErr  error
}

func (f *fakeStore) SaveRun(ctx context.Context, record *RunRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeStore) TopRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	return f.top, f.topErr
}

func finishedState() *domain.GameState {
	state := domain.NewGameState(10_000_000, 50, 0, "ko")
	state.Company.Name = "NOVA Entertainment"
	state.Company.Money = -500_000
	state.Company.Reputation = 12
	state.Company.FanCount = 45_000
	state.Turn = 6
	state.Phase = domain.PhaseGameOver
	state.History = []domain.TurnResult{{Turn: 2}, {Turn: 4}}
	return state
}

func TestRecordGameOver(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, zap.NewNop())

	svc.RecordGameOver(context.Background(), "sess-1", finishedState())

	if len(store.saved) != 1 {
		t.Fatalf("expected one saved run, got %d", len(store.saved))
	}
	run := store.saved[0]
	if run.CompanyName != "NOVA Entertainment" || run.TurnsSurvived != 6 || run.Releases != 2 {
		t.Fatalf("unexpected record: %+v", run)
	}
	if run.FinalMoney != -500_000 || run.FinalFanCount != 45_000 {
		t.Fatalf("unexpected finals: %+v", run)
	}
	if run.EndedAt.IsZero() {
		t.Fatal("record must carry a timestamp")
	}
}

func TestRecordGameOverSwallowsStoreError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("db down")}
	svc := NewService(store, nil, zap.NewNop())

	// Must not panic; recording is best effort.
	svc.RecordGameOver(context.Background(), "sess-1", finishedState())
}

func TestLeaderboardPassesThroughWithoutCache(t *testing.T) {
	store := &fakeStore{top: []*RunRecord{{ID: 1, CompanyName: "A"}, {ID: 2, CompanyName: "B"}}}
	svc := NewService(store, nil, zap.NewNop())

	runs, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(runs) != 2 || runs[0].CompanyName != "A" {
		t.Fatalf("unexpected leaderboard: %+v", runs)
	}

	store.topErr = errors.New("db down")
	if _, err := svc.Leaderboard(context.Background()); err == nil {
		t.Fatal("store failure must surface when there is no cache")
	}
}
