package domain

// Company is the player's persistent economic state. Money and reputation at
// or below zero are terminal; reputation and fanCount are floored at zero
// after every delta application.
type Company struct {
	Name       string `json:"name"`
	Money      int64  `json:"money"`
	Reputation int64  `json:"reputation"`
	FanCount   int64  `json:"fanCount"`
}

// TurnResult is the immutable record of one completed comeback cycle.
// Appended to history, never mutated or removed.
type TurnResult struct {
	Title       string `json:"title"`
	Result      string `json:"result"`
	MoneyChange int64  `json:"moneyChange"`
	FanChange   int64  `json:"fanChange"`
	Turn        int    `json:"turn"`
}

// GamePhase is the current position in the turn loop.
type GamePhase string

const (
	PhaseIntro     GamePhase = "intro"
	PhaseCasting   GamePhase = "casting"
	PhaseStudio    GamePhase = "studio"
	PhaseMusicShow GamePhase = "musicshow"
	PhaseResult    GamePhase = "result"
	PhaseEvent     GamePhase = "event"
	PhaseGameOver  GamePhase = "gameover"
)

// PendingEventType tags the payload carried between phases.
type PendingEventType string

const PendingJudgeResult PendingEventType = "judgeResult"

// PendingEvent carries inter-phase data; currently only the judge verdict
// travels from musicshow to result this way.
type PendingEvent struct {
	Type        PendingEventType `json:"type"`
	JudgeResult *JudgeResult     `json:"judgeResult,omitempty"`
}

// GameState is the aggregate root. The session container exclusively owns
// it; every other component reads a snapshot and submits changes as a Patch
// through the container's single merge entry point.
type GameState struct {
	Company      Company       `json:"company"`
	Roster       []*Idol       `json:"roster"`
	CurrentGroup []*Idol       `json:"currentGroup"`
	CurrentTrack *Track        `json:"currentTrack"`
	Phase        GamePhase     `json:"phase"`
	Turn         int           `json:"turn"`
	Locale       string        `json:"locale"`
	History      []TurnResult  `json:"history"`
	PendingEvent *PendingEvent `json:"pendingEvent"`
}

// NewGameState returns a fresh aggregate positioned at the intro phase.
func NewGameState(money, reputation, fanCount int64, locale string) *GameState {
	return &GameState{
		Company: Company{
			Money:      money,
			Reputation: reputation,
			FanCount:   fanCount,
		},
		Roster:       []*Idol{},
		CurrentGroup: []*Idol{},
		Phase:        PhaseIntro,
		Turn:         1,
		Locale:       locale,
		History:      []TurnResult{},
	}
}

// Patch is a partial-state record. Nil fields leave the aggregate untouched;
// set fields replace their target whole (copy-on-write: no component mutates
// nested objects in place).
type Patch struct {
	Company      *Company
	Roster       []*Idol
	CurrentGroup []*Idol
	CurrentTrack *Track
	ClearTrack   bool
	Phase        *GamePhase
	Turn         *int
	Locale       *string
	History      []TurnResult
	PendingEvent *PendingEvent
	ClearPending bool
}

// Apply merges the patch into a copy of the state and returns the copy. The
// receiver is never modified.
func (p *Patch) Apply(state *GameState) *GameState {
	next := *state

	if p.Company != nil {
		next.Company = *p.Company
	}
	if p.Roster != nil {
		next.Roster = p.Roster
	}
	if p.CurrentGroup != nil {
		next.CurrentGroup = p.CurrentGroup
	}
	if p.CurrentTrack != nil {
		next.CurrentTrack = p.CurrentTrack
	} else if p.ClearTrack {
		next.CurrentTrack = nil
	}
	if p.Phase != nil {
		next.Phase = *p.Phase
	}
	if p.Turn != nil {
		next.Turn = *p.Turn
	}
	if p.Locale != nil {
		next.Locale = *p.Locale
	}
	if p.History != nil {
		next.History = p.History
	}
	if p.PendingEvent != nil {
		next.PendingEvent = p.PendingEvent
	} else if p.ClearPending {
		next.PendingEvent = nil
	}

	return &next
}

func phasePtr(p GamePhase) *GamePhase { return &p }

// PatchPhase is a convenience for transitions that only move the phase.
func PatchPhase(p GamePhase) *Patch {
	return &Patch{Phase: phasePtr(p)}
}
