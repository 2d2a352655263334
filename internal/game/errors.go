package game

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a domain rule violation. Codes are stable across
// releases; clients switch on them.
type ErrorCode int

const (
	CodeGameNotFound         ErrorCode = 1001
	CodePlayerAlreadyInGame  ErrorCode = 1002
	CodeInvalidGameState     ErrorCode = 1003
	CodeInvalidGameSettings  ErrorCode = 1005
	CodeInvalidPlayerCount   ErrorCode = 1006
	CodeUserNotFound         ErrorCode = 1007
	CodeUserNotAuthenticated ErrorCode = 1008
)

// AppError is a domain error carrying a stable code, a human message and
// the HTTP status class it translates to at the boundary. It is constructed
// next to the violated rule and propagates unmodified.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// AsAppError unwraps err into an AppError, if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ErrGameNotFound(gameID string) *AppError {
	return &AppError{
		Code:    CodeGameNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("game %s not found", gameID),
	}
}

func ErrPlayerAlreadyInGame(userID, gameID string) *AppError {
	return &AppError{
		Code:    CodePlayerAlreadyInGame,
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("player %s is already in an active game %s", userID, gameID),
	}
}

func ErrInvalidGameState(expected GameStatus) *AppError {
	return &AppError{
		Code:    CodeInvalidGameState,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("invalid game state, expected %s", expected),
	}
}

func ErrInvalidGameSettings(setting string, min int) *AppError {
	return &AppError{
		Code:    CodeInvalidGameSettings,
		Status:  http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("invalid game settings, %s must be greater than %d", setting, min),
	}
}

func ErrInvalidPlayerCount() *AppError {
	return &AppError{
		Code:    CodeInvalidPlayerCount,
		Status:  http.StatusBadRequest,
		Message: "the game must have at least one player",
	}
}

func ErrUserNotFound(userID string) *AppError {
	return &AppError{
		Code:    CodeUserNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("user %s not found", userID),
	}
}

func ErrUserNotAuthenticated() *AppError {
	return &AppError{
		Code:    CodeUserNotAuthenticated,
		Status:  http.StatusUnauthorized,
		Message: "user not authenticated",
	}
}

// Invariant breaches are consistency failures upstream of the engine
// (typically a concurrent writer). They are not domain errors: they carry
// no code, are never retried and surface as generic failures.
var (
	ErrNoActiveRound    = errors.New("no active round found for the game")
	ErrNoAvailableWords = errors.New("no available words for the next round")
)
