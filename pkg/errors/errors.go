package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeGameError    = "GAME_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodePhase        = "PHASE_ERROR"
	CodeFunds        = "FUNDS_ERROR"
	CodeCache        = "CACHE_ERROR"
	CodeCollaborator = "COLLABORATOR_ERROR"
	CodeRecords      = "RECORDS_ERROR"
	CodeSessionBusy  = "SESSION_BUSY"
)

type GameError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *GameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GameError) Unwrap() error {
	return e.Cause
}

func NewGameError(message, code string, statusCode int, context map[string]any) *GameError {
	return &GameError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *GameError) WithCause(cause error) *GameError {
	e.Cause = cause
	return e
}

// Base returns the underlying GameError. Wrapper types get it by embedding,
// which lets AsGameError match any of them.
func (e *GameError) Base() *GameError {
	return e
}

type coded interface {
	Base() *GameError
}

// AsGameError extracts the GameError carried anywhere in err's chain,
// including the typed wrappers that embed one.
func AsGameError(err error) (*GameError, bool) {
	var c coded
	if stderrors.As(err, &c) {
		return c.Base(), true
	}
	return nil, false
}

type ValidationError struct {
	*GameError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		GameError: &GameError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// PhaseError signals an action fired against the wrong game phase.
type PhaseError struct {
	*GameError
	Phase  string
	Action string
}

func NewPhaseError(message, phase, action string) *PhaseError {
	return &PhaseError{
		GameError: &GameError{
			Message:    message,
			Code:       CodePhase,
			StatusCode: 409,
			Context: map[string]any{
				"phase":  phase,
				"action": action,
			},
		},
		Phase:  phase,
		Action: action,
	}
}

// FundsError signals the company cannot pay for the requested action.
type FundsError struct {
	*GameError
	Required int64
	Balance  int64
}

func NewFundsError(message string, required, balance int64) *FundsError {
	return &FundsError{
		GameError: &GameError{
			Message:    message,
			Code:       CodeFunds,
			StatusCode: 402,
			Context: map[string]any{
				"required": required,
				"balance":  balance,
			},
		},
		Required: required,
		Balance:  balance,
	}
}

// BusyError signals a trigger arrived while the session is still resolving a
// previous one. The client must wait for the in-flight reply.
type BusyError struct {
	*GameError
	SessionID string
}

func NewBusyError(sessionID string) *BusyError {
	return &BusyError{
		GameError: &GameError{
			Message:    "session is already resolving an action",
			Code:       CodeSessionBusy,
			StatusCode: 409,
			Context: map[string]any{
				"sessionId": sessionID,
			},
		},
		SessionID: sessionID,
	}
}

type CacheError struct {
	*GameError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		GameError: &GameError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// CollaboratorError wraps a failed external generator call. Call sites log it
// and substitute a fallback value; it never reaches the player.
type CollaboratorError struct {
	*GameError
	Collaborator string
	Operation    string
}

func NewCollaboratorError(message, collaborator, operation string, cause error) *CollaboratorError {
	return &CollaboratorError{
		GameError: &GameError{
			Message:    message,
			Code:       CodeCollaborator,
			StatusCode: 502,
			Context: map[string]any{
				"collaborator": collaborator,
				"operation":    operation,
			},
			Cause: cause,
		},
		Collaborator: collaborator,
		Operation:    operation,
	}
}
