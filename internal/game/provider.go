package game

import "context"

// DataProvider is the persistence contract the orchestrator runs against.
// Every operation re-reads authoritative state through it; the service keeps
// no game state between calls. Lookups return (nil, nil) when the record
// does not exist so the caller decides which domain error applies.
//
// The provider is the only layer that could arrest concurrent
// read-modify-write races on one game (transactions, conditional writes);
// the orchestrator itself assumes at most one caller per game at a time.
type DataProvider interface {
	GameByID(ctx context.Context, id string) (*Game, error)
	CreateGame(ctx context.Context, hostID string, timerMinutes, maxScore int) (*Game, error)
	UpdateGame(ctx context.Context, gameID string, update GameUpdate) error
	AddPlayer(ctx context.Context, gameID, userID string) error
	RemovePlayer(ctx context.Context, gameID, userID string) error
	ActiveGameFor(ctx context.Context, userID string) (*Game, error)
	SetRoundWinner(ctx context.Context, roundID, winnerID string) error
	UsedWordIDs(ctx context.Context, gameID string) ([]uint, error)
	AvailableWords(ctx context.Context, method MethodType, excludeIDs []uint) ([]Word, error)
	CreateRound(ctx context.Context, gameID string, method MethodType, wordID uint, activePlayerID string) (*Round, error)
	IncrementScore(ctx context.Context, gameID, userID string) error
	RemoveGame(ctx context.Context, gameID string) error
}

// UserDirectory resolves durable user identities. Satisfied by the database
// user store in production and by MemoryProvider in tests.
type UserDirectory interface {
	UserByID(ctx context.Context, id string) (*Player, error)
}
