package game

import "testing"

func validTestGame() *Game {
	return &Game{
		TimerMinutes: 3,
		MaxScore:     5,
		Status:       StatusWaiting,
		Players:      testPlayers("a", "b"),
	}
}

func TestValidateGameStateMismatch(t *testing.T) {
	validator := RulesValidator{}
	game := validTestGame()

	if err := validator.ValidateGameState(game, StatusWaiting); err != nil {
		t.Fatalf("expected waiting game to pass, got %v", err)
	}

	err := validator.ValidateGameState(game, StatusInProgress)
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameState {
		t.Fatalf("expected invalid game state, got %v", err)
	}
}

func TestValidateGameSettings(t *testing.T) {
	validator := RulesValidator{}

	if err := validator.ValidateGameSettings(validTestGame()); err != nil {
		t.Fatalf("expected valid settings to pass, got %v", err)
	}

	game := validTestGame()
	game.TimerMinutes = 1
	if appErr, ok := AsAppError(validator.ValidateGameSettings(game)); !ok || appErr.Code != CodeInvalidGameSettings {
		t.Fatalf("expected invalid settings for timer=1")
	}

	game = validTestGame()
	game.MaxScore = 1
	if appErr, ok := AsAppError(validator.ValidateGameSettings(game)); !ok || appErr.Code != CodeInvalidGameSettings {
		t.Fatalf("expected invalid settings for max score=1")
	}

	game = validTestGame()
	game.Players = nil
	if appErr, ok := AsAppError(validator.ValidateGameSettings(game)); !ok || appErr.Code != CodeInvalidPlayerCount {
		t.Fatalf("expected invalid player count for empty player set")
	}
}
