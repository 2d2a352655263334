package game

import (
	"context"
	"fmt"
	"testing"
)

func newTestService(t *testing.T) (*Service, *MemoryProvider) {
	t.Helper()
	provider := NewMemoryProvider()
	provider.AddUser(Player{ID: "a", Email: "ada@example.com", Username: "ada"})
	provider.AddUser(Player{ID: "b", Email: "bob@example.com", Username: "bob"})
	provider.AddUser(Player{ID: "c", Email: "cleo@example.com", Username: "cleo"})

	var words []Word
	var id uint
	for method := MethodType(0); method < MethodCount; method++ {
		for i := 0; i < 12; i++ {
			id++
			words = append(words, Word{ID: id, Value: fmt.Sprintf("%s-word-%d", method, i), Method: method})
		}
	}
	provider.SeedWords(words...)

	svc := NewService(provider, provider, RulesValidator{}, Defaults{TimerMinutes: 3, MaxScore: 5})
	return svc, provider
}

func mustCreateGame(t *testing.T, svc *Service, userID string) string {
	t.Helper()
	gameID, err := svc.CreateGame(context.Background(), userID)
	if err != nil {
		t.Fatalf("create game for %s: %v", userID, err)
	}
	return gameID
}

func mustJoin(t *testing.T, svc *Service, gameID, userID string) {
	t.Helper()
	if err := svc.JoinGame(context.Background(), gameID, userID); err != nil {
		t.Fatalf("join game for %s: %v", userID, err)
	}
}

func TestCreateGameSetsHost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	game, err := svc.GameDetails(ctx, gameID)
	if err != nil {
		t.Fatalf("game details: %v", err)
	}
	if game.Status != StatusWaiting {
		t.Fatalf("expected waiting lobby, got %s", game.Status)
	}
	if game.HostID != "a" {
		t.Fatalf("expected host a, got %s", game.HostID)
	}
	if len(game.Players) != 1 || !game.Players[0].IsHost {
		t.Fatalf("expected sole hosting member, got %+v", game.Players)
	}
}

func TestCreateGameRejectsPlayerWithActiveGame(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreateGame(t, svc, "a")
	_, err := svc.CreateGame(context.Background(), "a")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodePlayerAlreadyInGame {
		t.Fatalf("expected player already in game, got %v", err)
	}
}

func TestCreateGameUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateGame(context.Background(), "ghost")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeUserNotFound {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestJoinGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")

	game, err := svc.GameDetails(ctx, gameID)
	if err != nil {
		t.Fatalf("game details: %v", err)
	}
	if len(game.Players) != 2 {
		t.Fatalf("expected two players, got %d", len(game.Players))
	}

	// Re-joining the same lobby is a no-op, not an error.
	mustJoin(t, svc, gameID, "b")
	game, _ = svc.GameDetails(ctx, gameID)
	if len(game.Players) != 2 {
		t.Fatalf("expected rejoin to be idempotent, got %d players", len(game.Players))
	}
}

func TestJoinGameWhileInAnotherGame(t *testing.T) {
	svc, _ := newTestService(t)

	mustCreateGame(t, svc, "a")
	otherID := mustCreateGame(t, svc, "b")

	err := svc.JoinGame(context.Background(), otherID, "a")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodePlayerAlreadyInGame {
		t.Fatalf("expected player already in game, got %v", err)
	}
}

func TestJoinGameNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.JoinGame(context.Background(), "missing", "a")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeGameNotFound {
		t.Fatalf("expected game not found, got %v", err)
	}
}

func TestJoinGameAfterStart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	err := svc.JoinGame(ctx, gameID, "c")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameState {
		t.Fatalf("expected invalid game state, got %v", err)
	}
}

func TestLeaveLobbyReassignsHost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	mustJoin(t, svc, gameID, "c")

	if err := svc.LeaveLobby(ctx, gameID, "a"); err != nil {
		t.Fatalf("leave lobby: %v", err)
	}

	game, err := svc.GameDetails(ctx, gameID)
	if err != nil {
		t.Fatalf("game details: %v", err)
	}
	if game.HostID != "b" {
		t.Fatalf("expected host reassigned to first remaining player b, got %s", game.HostID)
	}
	if len(game.Players) != 2 {
		t.Fatalf("expected two remaining players, got %d", len(game.Players))
	}
}

func TestLeaveLobbyLastPlayerRemovesGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	if err := svc.LeaveLobby(ctx, gameID, "a"); err != nil {
		t.Fatalf("leave lobby: %v", err)
	}

	_, err := svc.GameDetails(ctx, gameID)
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeGameNotFound {
		t.Fatalf("expected game removed, got %v", err)
	}
}

func TestLeaveLobbyNonMemberIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	if err := svc.LeaveLobby(ctx, gameID, "b"); err != nil {
		t.Fatalf("expected non-member leave to be a no-op, got %v", err)
	}
	game, _ := svc.GameDetails(ctx, gameID)
	if len(game.Players) != 1 {
		t.Fatalf("expected lobby untouched, got %d players", len(game.Players))
	}
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	methods := []MethodType{MethodDescription, MethodMimic}
	if err := svc.UpdateSettings(ctx, gameID, 5, 10, methods); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.TimerMinutes != 5 || game.MaxScore != 10 || len(game.EnabledMethods) != 2 {
		t.Fatalf("settings not persisted: %+v", game)
	}
}

func TestUpdateSettingsRejectsBadValues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	err := svc.UpdateSettings(ctx, gameID, 1, 10, []MethodType{MethodDrawing})
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameSettings {
		t.Fatalf("expected invalid settings, got %v", err)
	}
}

func TestUpdateSettingsInProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	err := svc.UpdateSettings(ctx, gameID, 5, 10, []MethodType{MethodDrawing})
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameState {
		t.Fatalf("expected invalid game state, got %v", err)
	}
}

func TestStartGameFirstRound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")

	turn, err := svc.StartGame(ctx, gameID, "a")
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if turn.ActivePlayer.ID != "b" {
		t.Fatalf("expected first active player b (next after starter), got %s", turn.ActivePlayer.ID)
	}
	if turn.Method != MethodDescription {
		t.Fatalf("expected first method description, got %s", turn.Method)
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.Status != StatusInProgress {
		t.Fatalf("expected in-progress game, got %s", game.Status)
	}
	if len(game.Rounds) != 1 {
		t.Fatalf("expected one round, got %d", len(game.Rounds))
	}
}

func TestStartGameTwiceFails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	_, err := svc.StartGame(ctx, gameID, "a")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameState {
		t.Fatalf("expected invalid game state, got %v", err)
	}
}

func TestEndTurnScoresAndRotates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if err := svc.UpdateSettings(ctx, gameID, 3, 3, []MethodType{MethodDrawing, MethodDescription, MethodMimic}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	turn, err := svc.StartGame(ctx, gameID, "a")
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if turn.ActivePlayer.ID != "b" || turn.Method != MethodDescription {
		t.Fatalf("unexpected first round: %+v", turn)
	}

	finished, err := svc.EndTurn(ctx, gameID, "b", "b")
	if err != nil {
		t.Fatalf("end turn: %v", err)
	}
	if finished {
		t.Fatal("game should not be finished at score 1")
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.PlayerByID("b").Score != 1 {
		t.Fatalf("expected b at score 1, got %d", game.PlayerByID("b").Score)
	}
	if len(game.Rounds) != 2 {
		t.Fatalf("expected second round, got %d rounds", len(game.Rounds))
	}
	round2 := game.Rounds[1]
	// The next active player follows the previous round's active player,
	// not the guesser or the turn ender.
	if round2.ActivePlayerID != "a" {
		t.Fatalf("expected round 2 active player a, got %s", round2.ActivePlayerID)
	}
	if round2.Method != MethodMimic {
		t.Fatalf("expected rotation description->mimic, got %s", round2.Method)
	}
	if game.Rounds[0].WinnerID != "b" {
		t.Fatalf("expected round 1 winner recorded, got %q", game.Rounds[0].WinnerID)
	}
}

func TestEndTurnFinishesGameAtMaxScore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if err := svc.UpdateSettings(ctx, gameID, 3, 3, []MethodType{MethodDrawing}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	for i := 0; i < 2; i++ {
		finished, err := svc.EndTurn(ctx, gameID, "a", "b")
		if err != nil {
			t.Fatalf("end turn %d: %v", i, err)
		}
		if finished {
			t.Fatalf("game finished early at score %d", i+1)
		}
	}

	finished, err := svc.EndTurn(ctx, gameID, "a", "b")
	if err != nil {
		t.Fatalf("final end turn: %v", err)
	}
	if !finished {
		t.Fatal("expected game to finish once max score reached")
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.Status != StatusFinished {
		t.Fatalf("expected finished game, got %s", game.Status)
	}
	if game.WinnerID != "b" {
		t.Fatalf("expected winner b, got %s", game.WinnerID)
	}
	if len(game.Rounds) != 3 {
		t.Fatalf("expected no round after the finishing turn, got %d rounds", len(game.Rounds))
	}
	if game.PlayerByID("b").Score != 3 {
		t.Fatalf("expected winning score 3, got %d", game.PlayerByID("b").Score)
	}
}

func TestEndTurnRequiresInProgress(t *testing.T) {
	svc, _ := newTestService(t)

	gameID := mustCreateGame(t, svc, "a")
	_, err := svc.EndTurn(context.Background(), gameID, "a", "a")
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeInvalidGameState {
		t.Fatalf("expected invalid game state, got %v", err)
	}
}

func TestNoWordReuseWithinGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if err := svc.UpdateSettings(ctx, gameID, 3, 10, []MethodType{MethodDrawing}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := svc.EndTurn(ctx, gameID, "a", "b"); err != nil {
			t.Fatalf("end turn %d: %v", i, err)
		}
	}

	game, _ := svc.GameDetails(ctx, gameID)
	seen := make(map[uint]bool)
	for _, round := range game.Rounds {
		if seen[round.WordID] {
			t.Fatalf("word %d used in two rounds", round.WordID)
		}
		seen[round.WordID] = true
	}
}

func TestTimeUpProgressesWithoutScoring(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	if err := svc.TimeUp(ctx, gameID); err != nil {
		t.Fatalf("time up: %v", err)
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if len(game.Rounds) != 2 {
		t.Fatalf("expected next round after time up, got %d rounds", len(game.Rounds))
	}
	if game.Rounds[0].WinnerID != "" {
		t.Fatalf("expected no winner on the timed-out round, got %q", game.Rounds[0].WinnerID)
	}
	for _, player := range game.Players {
		if player.Score != 0 {
			t.Fatalf("expected no score change on time up, got %+v", player)
		}
	}
}

func TestLeaveGameEndsInProgressWithTwoPlayers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	gameOver, err := svc.LeaveGame(ctx, gameID, "b")
	if err != nil {
		t.Fatalf("leave game: %v", err)
	}
	if !gameOver {
		t.Fatal("expected leaving a two-player game to end it")
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.Status != StatusFinished {
		t.Fatalf("expected finished game, got %s", game.Status)
	}
}

func TestLeaveGameWithMorePlayersContinues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	gameID := mustCreateGame(t, svc, "a")
	mustJoin(t, svc, gameID, "b")
	mustJoin(t, svc, gameID, "c")
	if _, err := svc.StartGame(ctx, gameID, "a"); err != nil {
		t.Fatalf("start game: %v", err)
	}

	gameOver, err := svc.LeaveGame(ctx, gameID, "c")
	if err != nil {
		t.Fatalf("leave game: %v", err)
	}
	if gameOver {
		t.Fatal("expected three-player game to continue")
	}

	game, _ := svc.GameDetails(ctx, gameID)
	if game.Status != StatusInProgress {
		t.Fatalf("expected in-progress game, got %s", game.Status)
	}
	if len(game.Players) != 2 {
		t.Fatalf("expected two remaining players, got %d", len(game.Players))
	}
}

func TestActiveGameForPlayer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	game, err := svc.ActiveGameFor(ctx, "a")
	if err != nil {
		t.Fatalf("active game: %v", err)
	}
	if game != nil {
		t.Fatalf("expected no active game, got %s", game.ID)
	}

	gameID := mustCreateGame(t, svc, "a")
	game, err = svc.ActiveGameFor(ctx, "a")
	if err != nil {
		t.Fatalf("active game: %v", err)
	}
	if game == nil || game.ID != gameID {
		t.Fatalf("expected active game %s, got %+v", gameID, game)
	}
}
