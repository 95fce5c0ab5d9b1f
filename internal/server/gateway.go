package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/adapter"
	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/service/records"
	"github.com/parkjy/idol-tycoon-go/internal/session"
	"github.com/parkjy/idol-tycoon-go/pkg/errors"
)

// CandidateGenerator produces a casting batch.
type CandidateGenerator interface {
	GenerateCandidates(ctx context.Context, count int) []*domain.Idol
}

// TrackProducer builds a full track for a studio brief.
type TrackProducer interface {
	ProduceTrack(ctx context.Context, groupName string, concept domain.ConceptType, market domain.MarketType, members []*domain.Idol, cost int64) *domain.Track
}

// StageJudge scores a released track.
type StageJudge interface {
	Evaluate(ctx context.Context, track *domain.Track, members []*domain.Idol, company domain.Company, turn int) *domain.JudgeResult
}

// CrisisWriter builds the crisis scenario for the event phase.
type CrisisWriter interface {
	GenerateCrisis(ctx context.Context, group []*domain.Idol, company domain.Company) *domain.CrisisEvent
}

// Gateway terminates player WebSocket connections. Each connection owns one
// session; all game triggers arrive as JSON requests over it.
type Gateway struct {
	sessions      *session.Manager
	resolver      *engine.Resolver
	casting       CandidateGenerator
	producer      TrackProducer
	judge         StageJudge
	events        CrisisWriter
	records       *records.Service
	formatter     *adapter.ResponseFormatter
	defaultLocale string
	logger        *zap.Logger
	upgrader      websocket.Upgrader
}

func NewGateway(
	sessions *session.Manager,
	resolver *engine.Resolver,
	casting CandidateGenerator,
	producer TrackProducer,
	judge StageJudge,
	events CrisisWriter,
	recordsService *records.Service,
	defaultLocale string,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		sessions:      sessions,
		resolver:      resolver,
		casting:       casting,
		producer:      producer,
		judge:         judge,
		events:        events,
		records:       recordsService,
		formatter:     adapter.NewResponseFormatter(defaultLocale),
		defaultLocale: defaultLocale,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// playerConn is the per-connection context: the session plus transient
// content the next trigger refers to by index or id.
type playerConn struct {
	sess       *session.Session
	candidates map[string]*domain.Idol
	crisis     *domain.CrisisEvent
}

// ServeWS upgrades the connection and runs the request loop until the client
// goes away.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = g.defaultLocale
	}

	sess := g.sessions.Create(locale)
	defer g.sessions.Remove(sess.ID)

	pc := &playerConn{sess: sess}

	g.logger.Info("Player connected",
		zap.String("session_id", sess.ID),
		zap.String("remote", r.RemoteAddr))

	conn.SetReadLimit(constants.WebSocketConfig.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	})

	writer := &connWriter{conn: conn}

	pingDone := make(chan struct{})
	defer close(pingDone)
	go g.pingLoop(writer, pingDone)

	if err := g.write(writer, &Response{
		Type:      TypeHello,
		SessionID: sess.ID,
		State:     sess.State(),
	}); err != nil {
		return
	}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("WebSocket read error",
					zap.String("session_id", sess.ID),
					zap.Error(err))
			}
			g.logger.Info("Player disconnected", zap.String("session_id", sess.ID))
			return
		}

		resp := g.handleRequest(r.Context(), pc, &req)
		if err := g.write(writer, resp); err != nil {
			g.logger.Warn("WebSocket write error",
				zap.String("session_id", sess.ID),
				zap.Error(err))
			return
		}
	}
}

// connWriter serializes writes so the ping loop and the request loop never
// interleave frames on the shared connection.
type connWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (g *Gateway) write(w *connWriter, resp *Response) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout)); err != nil {
		return err
	}
	return w.conn.WriteJSON(resp)
}

func (g *Gateway) pingLoop(w *connWriter, done <-chan struct{}) {
	ticker := time.NewTicker(constants.WebSocketConfig.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.mu.Lock()
			_ = w.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
			err := w.conn.WriteMessage(websocket.PingMessage, nil)
			w.mu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// handleRequest dispatches one trigger and builds its reply.
func (g *Gateway) handleRequest(ctx context.Context, pc *playerConn, req *Request) *Response {
	switch req.Action {
	case ActionStartGame:
		return g.startGame(pc, req)
	case ActionRecruit:
		return g.recruit(ctx, pc)
	case ActionConfirmCasting:
		return g.confirmCasting(pc, req)
	case ActionProduce:
		return g.produce(ctx, pc, req)
	case ActionRelease:
		return g.release(ctx, pc)
	case ActionProceed:
		return g.proceed(ctx, pc)
	case ActionChoose:
		return g.choose(ctx, pc, req)
	case ActionRestart:
		return g.restart(pc)
	case ActionLeaderboard:
		return g.leaderboard(ctx)
	default:
		return errResponse(req.Action, errors.NewValidationError("unknown action", "action", req.Action))
	}
}

func (g *Gateway) startGame(pc *playerConn, req *Request) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(req.Action, err)
	}

	patch, err := g.resolver.StartGame(state, req.CompanyName)
	if err != nil {
		pc.sess.Abort()
		return errResponse(req.Action, err)
	}

	return stateResponse(ActionStartGame, pc.sess.Commit(patch))
}

func (g *Gateway) recruit(ctx context.Context, pc *playerConn) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(ActionRecruit, err)
	}

	if state.Phase != domain.PhaseCasting {
		pc.sess.Abort()
		return errResponse(ActionRecruit, errors.NewPhaseError("action not allowed in current phase", string(state.Phase), ActionRecruit))
	}

	candidates := g.casting.GenerateCandidates(ctx, constants.Casting.BatchSize)

	pc.candidates = make(map[string]*domain.Idol, len(candidates))
	for _, c := range candidates {
		pc.candidates[c.ID] = c
	}

	pc.sess.Commit(nil)
	return &Response{
		Type:       TypeCandidates,
		Action:     ActionRecruit,
		Candidates: candidates,
	}
}

func (g *Gateway) confirmCasting(pc *playerConn, req *Request) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(req.Action, err)
	}

	selected := make([]*domain.Idol, 0, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		idol, ok := pc.candidates[id]
		if !ok {
			pc.sess.Abort()
			return errResponse(req.Action, errors.NewValidationError("unknown candidate", "selectedIds", id))
		}
		selected = append(selected, idol)
	}

	patch, err := g.resolver.ConfirmCasting(state, selected)
	if err != nil {
		pc.sess.Abort()
		return errResponse(req.Action, err)
	}

	pc.candidates = nil
	return stateResponse(ActionConfirmCasting, pc.sess.Commit(patch))
}

func (g *Gateway) produce(ctx context.Context, pc *playerConn, req *Request) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(req.Action, err)
	}

	concept := domain.ConceptType(req.Concept)
	market := domain.MarketType(req.TargetMarket)

	chargePatch, err := g.resolver.ChargeProduction(state, concept, market, req.Retry)
	if err != nil {
		pc.sess.Abort()
		return errResponse(req.Action, err)
	}
	charged := chargePatch.Apply(state)

	cost := engine.ProductionCost(market, req.Retry)
	track := g.producer.ProduceTrack(ctx, charged.Company.Name, concept, market, charged.CurrentGroup, cost)

	trackPatch, err := g.resolver.SetTrack(charged, track)
	if err != nil {
		pc.sess.Abort()
		return errResponse(req.Action, err)
	}

	// Fee and track land in one commit; the fee stands even when the track
	// carries fallback content.
	return stateResponse(ActionProduce, pc.sess.Commit(&domain.Patch{
		Company:      chargePatch.Company,
		CurrentTrack: trackPatch.CurrentTrack,
	}))
}

// release resolves the whole stage in one trigger: the transition to
// musicshow, the judge verdict, and the move to the result phase land in a
// single commit. The client never sees the musicshow phase at rest and there
// is no separate judge action.
func (g *Gateway) release(ctx context.Context, pc *playerConn) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(ActionRelease, err)
	}

	releasePatch, err := g.resolver.Release(state)
	if err != nil {
		pc.sess.Abort()
		return errResponse(ActionRelease, err)
	}
	staged := releasePatch.Apply(state)

	verdict := g.judge.Evaluate(ctx, staged.CurrentTrack, staged.CurrentGroup, staged.Company, staged.Turn)

	judgePatch, err := g.resolver.AttachJudgeResult(staged, verdict)
	if err != nil {
		pc.sess.Abort()
		return errResponse(ActionRelease, err)
	}

	resp := stateResponse(ActionRelease, pc.sess.Commit(judgePatch))
	resp.Judge = verdict
	return resp
}

func (g *Gateway) proceed(ctx context.Context, pc *playerConn) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(ActionProceed, err)
	}

	rank := ""
	if state.PendingEvent != nil && state.PendingEvent.JudgeResult != nil {
		rank = state.PendingEvent.JudgeResult.Result
	}

	patch, err := g.resolver.ApplyChartResult(state)
	if err != nil {
		pc.sess.Abort()
		return errResponse(ActionProceed, err)
	}
	next := patch.Apply(state)

	resp := &Response{Type: TypeState, Action: ActionProceed}
	resp.ResultMessage = g.formatter.FormatChartResult(state.Locale, state.Company.Name, rank)

	switch next.Phase {
	case domain.PhaseEvent:
		pc.crisis = g.events.GenerateCrisis(ctx, next.CurrentGroup, next.Company)
		resp.Crisis = pc.crisis
	case domain.PhaseGameOver:
		g.recordRun(ctx, pc, next)
		resp.ResultMessage = resp.ResultMessage + "\n\n" + g.formatter.FormatGameOver(next)
	}

	resp.State = pc.sess.Commit(patch)
	return resp
}

func (g *Gateway) choose(ctx context.Context, pc *playerConn, req *Request) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(req.Action, err)
	}

	if pc.crisis == nil {
		pc.sess.Abort()
		return errResponse(req.Action, errors.NewValidationError("no crisis to resolve", "choiceIndex", req.ChoiceIndex))
	}
	if req.ChoiceIndex < 0 || req.ChoiceIndex >= len(pc.crisis.Choices) {
		pc.sess.Abort()
		return errResponse(req.Action, errors.NewValidationError("choice index out of range", "choiceIndex", req.ChoiceIndex))
	}
	choice := pc.crisis.Choices[req.ChoiceIndex]

	patch, err := g.resolver.ApplyEventChoice(state, choice)
	if err != nil {
		pc.sess.Abort()
		return errResponse(req.Action, err)
	}
	pc.crisis = nil

	next := patch.Apply(state)
	message := choice.ResultMessage
	if next.Phase == domain.PhaseGameOver {
		g.recordRun(ctx, pc, next)
		message = message + "\n\n" + g.formatter.FormatGameOver(next)
	}

	resp := stateResponse(ActionChoose, pc.sess.Commit(patch))
	resp.ResultMessage = message
	return resp
}

func (g *Gateway) restart(pc *playerConn) *Response {
	state, err := pc.sess.Begin()
	if err != nil {
		return errResponse(ActionRestart, err)
	}

	patch, err := g.resolver.Restart(state)
	if err != nil {
		pc.sess.Abort()
		return errResponse(ActionRestart, err)
	}

	pc.candidates = nil
	pc.crisis = nil
	return stateResponse(ActionRestart, pc.sess.Commit(patch))
}

func (g *Gateway) leaderboard(ctx context.Context) *Response {
	if g.records == nil {
		return errResponse(ActionLeaderboard, errors.NewGameError("records feature is disabled", errors.CodeRecords, 404, nil))
	}

	runs, err := g.records.Leaderboard(ctx)
	if err != nil {
		return errResponse(ActionLeaderboard, err)
	}

	return &Response{
		Type:        TypeLeaderboard,
		Action:      ActionLeaderboard,
		Leaderboard: runs,
	}
}

func (g *Gateway) recordRun(ctx context.Context, pc *playerConn, final *domain.GameState) {
	if g.records == nil {
		return
	}
	g.records.RecordGameOver(ctx, pc.sess.ID, final)
}

func stateResponse(action string, state *domain.GameState) *Response {
	return &Response{
		Type:   TypeState,
		Action: action,
		State:  state,
	}
}

func errResponse(action string, err error) *Response {
	body := &ErrorBody{
		Code:    errors.CodeGameError,
		Message: err.Error(),
	}

	if gameErr, ok := errors.AsGameError(err); ok {
		body.Code = gameErr.Code
		body.Message = gameErr.Message
	}

	return &Response{
		Type:   TypeError,
		Action: action,
		Error:  body,
	}
}
