package game

// Validator gates state transitions and settings changes. The orchestrator
// holds it by interface so tests can substitute rule sets without a mocking
// framework.
type Validator interface {
	ValidateGameState(game *Game, expected GameStatus) error
	ValidateGameSettings(game *Game) error
}

// RulesValidator is the production rule set. Pure checks, no side effects.
type RulesValidator struct{}

func (RulesValidator) ValidateGameState(game *Game, expected GameStatus) error {
	if game.Status != expected {
		return ErrInvalidGameState(expected)
	}
	return nil
}

func (RulesValidator) ValidateGameSettings(game *Game) error {
	if game.TimerMinutes <= 1 {
		return ErrInvalidGameSettings("timer", 1)
	}
	if game.MaxScore <= 1 {
		return ErrInvalidGameSettings("max score", 1)
	}
	if len(game.Players) == 0 {
		return ErrInvalidPlayerCount()
	}
	return nil
}
