package server

import (
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/service/records"
)

// Client actions. One request resolves to exactly one response; while it is
// in flight further requests on the same session are rejected as busy.
const (
	ActionStartGame      = "start_game"
	ActionRecruit        = "recruit"
	ActionConfirmCasting = "confirm_casting"
	ActionProduce        = "produce"
	ActionRelease        = "release"
	ActionProceed        = "proceed"
	ActionChoose         = "choose"
	ActionRestart        = "restart"
	ActionLeaderboard    = "leaderboard"
)

// Request is one client message.
type Request struct {
	Action       string   `json:"action"`
	CompanyName  string   `json:"companyName,omitempty"`
	SelectedIDs  []string `json:"selectedIds,omitempty"`
	Concept      string   `json:"concept,omitempty"`
	TargetMarket string   `json:"targetMarket,omitempty"`
	Retry        bool     `json:"retry,omitempty"`
	ChoiceIndex  int      `json:"choiceIndex,omitempty"`
}

// Response types.
const (
	TypeHello       = "hello"
	TypeState       = "state"
	TypeCandidates  = "candidates"
	TypeLeaderboard = "leaderboard"
	TypeError       = "error"
)

// ErrorBody carries the machine-readable failure back to the client.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is one server message. State snapshots accompany every accepted
// mutating action.
type Response struct {
	Type          string               `json:"type"`
	Action        string               `json:"action,omitempty"`
	SessionID     string               `json:"sessionId,omitempty"`
	State         *domain.GameState    `json:"state,omitempty"`
	Candidates    []*domain.Idol       `json:"candidates,omitempty"`
	Judge         *domain.JudgeResult  `json:"judge,omitempty"`
	Crisis        *domain.CrisisEvent  `json:"crisis,omitempty"`
	ResultMessage string               `json:"resultMessage,omitempty"`
	Leaderboard   []*records.RunRecord `json:"leaderboard,omitempty"`
	Error         *ErrorBody           `json:"error,omitempty"`
}
