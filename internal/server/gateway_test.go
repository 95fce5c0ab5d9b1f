package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/session"
	"github.com/parkjy/idol-tycoon-go/pkg/errors"
)

type fakeCasting struct{}

func (fakeCasting) GenerateCandidates(ctx context.Context, count int) []*domain.Idol {
	candidates := make([]*domain.Idol, count)
	for i := range candidates {
		candidates[i] = &domain.Idol{
			ID:       fmt.Sprintf("cand-%d", i),
			Name:     fmt.Sprintf("연습생%d", i),
			Age:      18,
			Gender:   domain.GenderFemale,
			Stats:    domain.Stats{Dance: 80, Vocal: 80, Visual: 80, Potential: 50, Charisma: 80},
			IsActive: true,
		}
	}
	return candidates
}

type fakeProducer struct{}

func (fakeProducer) ProduceTrack(ctx context.Context, groupName string, concept domain.ConceptType, market domain.MarketType, members []*domain.Idol, cost int64) *domain.Track {
	return &domain.Track{
		ID:           "track-1",
		Title:        groupName + " - Summer Pop",
		Concept:      concept,
		TargetMarket: market,
		Members:      members,
		Cost:         cost,
	}
}

type fakeJudge struct {
	verdict *domain.JudgeResult
}

func (f *fakeJudge) Evaluate(ctx context.Context, track *domain.Track, members []*domain.Idol, company domain.Company, turn int) *domain.JudgeResult {
	return f.verdict
}

type fakeCrisis struct{}

func (fakeCrisis) GenerateCrisis(ctx context.Context, group []*domain.Idol, company domain.Company) *domain.CrisisEvent {
	return &domain.CrisisEvent{
		Title:       "열애설 포착",
		Description: "기사화 직전입니다.",
		MemberName:  "연습생0",
		Choices: []domain.EventChoice{
			{Text: "해명", Effect: domain.EventEffect{Reputation: -5}, ResultMessage: "진화됐다."},
			{Text: "무대응", Effect: domain.EventEffect{Reputation: -20}, ResultMessage: "커졌다."},
			{Text: "전담팀", Effect: domain.EventEffect{Money: -3_000_000}, ResultMessage: "막았다."},
		},
	}
}

type testHarness struct {
	gateway *Gateway
	pc      *playerConn
	manager *session.Manager
}

func newHarness(t *testing.T, rank string, floats []float64) *testHarness {
	t.Helper()

	logger := zap.NewNop()
	manager := session.NewManager(logger)
	t.Cleanup(manager.Close)

	rng := &scriptedRNG{floats: floats}
	resolver := engine.NewResolver(rng, logger)

	verdict := &domain.JudgeResult{TotalScore: 90, Result: rank, Comment: "훌륭합니다."}
	gateway := NewGateway(manager, resolver, fakeCasting{}, fakeProducer{}, &fakeJudge{verdict: verdict}, fakeCrisis{}, nil, "ko", logger)

	sess := manager.Create("ko")
	return &testHarness{
		gateway: gateway,
		pc:      &playerConn{sess: sess},
		manager: manager,
	}
}

type scriptedRNG struct {
	floats []float64
}

func (s *scriptedRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRNG) Intn(n int) int { return 0 }

func (h *testHarness) handle(t *testing.T, req *Request) *Response {
	t.Helper()
	return h.gateway.handleRequest(context.Background(), h.pc, req)
}

func (h *testHarness) mustState(t *testing.T, req *Request) *Response {
	t.Helper()
	resp := h.handle(t, req)
	if resp.Type == TypeError {
		t.Fatalf("action %s failed: %+v", req.Action, resp.Error)
	}
	return resp
}

func TestFullComebackCycle(t *testing.T) {
	h := newHarness(t, constants.RankTop, []float64{0.99})

	resp := h.mustState(t, &Request{Action: ActionStartGame, CompanyName: "COMET"})
	if resp.State.Phase != domain.PhaseCasting || resp.State.Company.Name != "COMET" {
		t.Fatalf("unexpected state after start: %+v", resp.State)
	}

	resp = h.mustState(t, &Request{Action: ActionRecruit})
	if resp.Type != TypeCandidates || len(resp.Candidates) != constants.Casting.BatchSize {
		t.Fatalf("unexpected recruit response: %+v", resp)
	}

	resp = h.mustState(t, &Request{Action: ActionConfirmCasting, SelectedIDs: []string{"cand-0", "cand-1", "cand-2"}})
	if resp.State.Phase != domain.PhaseStudio {
		t.Fatalf("expected studio, got %s", resp.State.Phase)
	}
	wantMoney := constants.Company.InitialMoney - 3*constants.Casting.CostPerMember
	if resp.State.Company.Money != wantMoney {
		t.Fatalf("expected balance %d, got %d", wantMoney, resp.State.Company.Money)
	}

	resp = h.mustState(t, &Request{Action: ActionProduce, Concept: "summer", TargetMarket: "domestic"})
	if resp.State.CurrentTrack == nil || resp.State.CurrentTrack.Title != "COMET - Summer Pop" {
		t.Fatalf("expected produced track, got %+v", resp.State.CurrentTrack)
	}
	wantMoney -= 5_000_000
	if resp.State.Company.Money != wantMoney {
		t.Fatalf("expected balance %d after production, got %d", wantMoney, resp.State.Company.Money)
	}
	if resp.State.Phase != domain.PhaseStudio {
		t.Fatalf("production must stay in studio, got %s", resp.State.Phase)
	}

	resp = h.mustState(t, &Request{Action: ActionRelease})
	if resp.State.Phase != domain.PhaseResult {
		t.Fatalf("expected result phase, got %s", resp.State.Phase)
	}
	if resp.Judge == nil || resp.Judge.Result != constants.RankTop {
		t.Fatalf("expected the verdict on the reply, got %+v", resp.Judge)
	}
	if len(resp.State.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(resp.State.History))
	}

	resp = h.mustState(t, &Request{Action: ActionProceed})
	if resp.State.Phase != domain.PhaseCasting {
		t.Fatalf("expected next casting phase, got %s", resp.State.Phase)
	}
	if resp.State.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", resp.State.Turn)
	}
	wantMoney += 20_000_000
	if resp.State.Company.Money != wantMoney {
		t.Fatalf("expected balance %d after chart win, got %d", wantMoney, resp.State.Company.Money)
	}
}

func TestProceedIntoCrisisAndChoose(t *testing.T) {
	// A low roll routes into the event phase.
	h := newHarness(t, constants.RankHigh, []float64{0.01})

	h.mustState(t, &Request{Action: ActionStartGame})
	h.mustState(t, &Request{Action: ActionRecruit})
	h.mustState(t, &Request{Action: ActionConfirmCasting, SelectedIDs: []string{"cand-0", "cand-1"}})
	h.mustState(t, &Request{Action: ActionProduce, Concept: "ballad", TargetMarket: "japan"})
	h.mustState(t, &Request{Action: ActionRelease})

	resp := h.mustState(t, &Request{Action: ActionProceed})
	if resp.State.Phase != domain.PhaseEvent {
		t.Fatalf("expected event phase, got %s", resp.State.Phase)
	}
	if resp.Crisis == nil || len(resp.Crisis.Choices) != constants.Event.ChoiceCount {
		t.Fatalf("expected a crisis with choices, got %+v", resp.Crisis)
	}

	bad := h.handle(t, &Request{Action: ActionChoose, ChoiceIndex: 9})
	if bad.Type != TypeError || bad.Error.Code != errors.CodeValidation {
		t.Fatalf("expected validation error for a bad index, got %+v", bad)
	}

	resp = h.mustState(t, &Request{Action: ActionChoose, ChoiceIndex: 0})
	if resp.State.Phase != domain.PhaseCasting {
		t.Fatalf("expected return to casting, got %s", resp.State.Phase)
	}
	if resp.ResultMessage != "진화됐다." {
		t.Fatalf("expected the choice result message, got %q", resp.ResultMessage)
	}

	// The crisis is consumed with the choice.
	again := h.handle(t, &Request{Action: ActionChoose, ChoiceIndex: 0})
	if again.Type != TypeError {
		t.Fatal("a resolved crisis must not be choosable again")
	}
}

func TestBusySessionRejectsSecondTrigger(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	if _, err := h.pc.sess.Begin(); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	resp := h.handle(t, &Request{Action: ActionStartGame})
	if resp.Type != TypeError || resp.Error.Code != errors.CodeSessionBusy {
		t.Fatalf("expected busy rejection, got %+v", resp)
	}

	h.pc.sess.Abort()
	if resp := h.handle(t, &Request{Action: ActionStartGame}); resp.Type == TypeError {
		t.Fatalf("expected success after release, got %+v", resp.Error)
	}
}

func TestWrongPhaseActionsReportPhaseError(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	for _, action := range []string{ActionRecruit, ActionRelease, ActionProceed, ActionRestart} {
		resp := h.handle(t, &Request{Action: action})
		if resp.Type != TypeError || resp.Error.Code != errors.CodePhase {
			t.Fatalf("expected phase error for %s in intro, got %+v", action, resp)
		}
	}
}

func TestConfirmCastingRejectsUnknownCandidate(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	h.mustState(t, &Request{Action: ActionStartGame})
	h.mustState(t, &Request{Action: ActionRecruit})

	resp := h.handle(t, &Request{Action: ActionConfirmCasting, SelectedIDs: []string{"cand-0", "ghost"}})
	if resp.Type != TypeError || resp.Error.Code != errors.CodeValidation {
		t.Fatalf("expected validation error, got %+v", resp)
	}
}

func TestLeaderboardDisabled(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	resp := h.handle(t, &Request{Action: ActionLeaderboard})
	if resp.Type != TypeError || resp.Error.Code != errors.CodeRecords {
		t.Fatalf("expected records error, got %+v", resp)
	}
}

func TestUnknownAction(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	resp := h.handle(t, &Request{Action: "dance_battle"})
	if resp.Type != TypeError || resp.Error.Code != errors.CodeValidation {
		t.Fatalf("expected validation error, got %+v", resp)
	}
}

func TestServeWSRoundTrip(t *testing.T) {
	h := newHarness(t, constants.RankMid, nil)

	srv := httptest.NewServer(http.HandlerFunc(h.gateway.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?locale=ko"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var hello Response
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("reading hello: %v", err)
	}
	if hello.Type != TypeHello || hello.SessionID == "" {
		t.Fatalf("expected hello with session id, got %+v", hello)
	}
	if hello.State == nil || hello.State.Phase != domain.PhaseIntro {
		t.Fatalf("hello must carry the intro snapshot, got %+v", hello.State)
	}

	if err := conn.WriteJSON(&Request{Action: ActionStartGame, CompanyName: "스타라이트"}); err != nil {
		t.Fatalf("writing request: %v", err)
	}

	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if resp.Type != TypeState || resp.Action != ActionStartGame {
		t.Fatalf("expected state response, got %+v", resp)
	}
	if resp.State.Phase != domain.PhaseCasting || resp.State.Company.Name != "스타라이트" {
		t.Fatalf("unexpected state after start: %+v", resp.State)
	}
}
