package game

import (
	"context"
	"log"
)

// Defaults are the settings a freshly created lobby starts with. Hosts
// adjust them before starting; both must clear the validation minimums.
type Defaults struct {
	TimerMinutes int
	MaxScore     int
}

// Service is the session orchestrator. It is stateless per request: every
// operation reads the authoritative game through the provider, applies the
// rules and writes back. Event broadcasting stays with the caller so a
// failed broadcast never rolls back a state change.
type Service struct {
	provider  DataProvider
	users     UserDirectory
	validator Validator
	defaults  Defaults
}

func NewService(provider DataProvider, users UserDirectory, validator Validator, defaults Defaults) *Service {
	return &Service{
		provider:  provider,
		users:     users,
		validator: validator,
		defaults:  defaults,
	}
}

// CreateGame opens a new lobby with the user as sole member and host.
// A player holds at most one non-finished game at a time.
func (s *Service) CreateGame(ctx context.Context, userID string) (string, error) {
	active, err := s.provider.ActiveGameFor(ctx, userID)
	if err != nil {
		return "", err
	}
	if active != nil {
		log.Printf("create rejected user_id=%s active_game=%s", userID, active.ID)
		return "", ErrPlayerAlreadyInGame(userID, active.ID)
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound(userID)
	}

	created, err := s.provider.CreateGame(ctx, user.ID, s.defaults.TimerMinutes, s.defaults.MaxScore)
	if err != nil {
		return "", err
	}
	if err := s.provider.UpdateGame(ctx, created.ID, HostUpdate(user.ID)); err != nil {
		return "", err
	}

	log.Printf("game created game_id=%s host=%s", created.ID, userID)
	return created.ID, nil
}

// GameDetails resolves a game by id.
func (s *Service) GameDetails(ctx context.Context, gameID string) (*Game, error) {
	game, err := s.provider.GameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound(gameID)
	}
	return game, nil
}

// ActiveGameFor returns the player's current non-finished game, or nil.
func (s *Service) ActiveGameFor(ctx context.Context, userID string) (*Game, error) {
	return s.provider.ActiveGameFor(ctx, userID)
}

// JoinGame adds the user to a waiting lobby. Joining a lobby the user is
// already in is a no-op.
func (s *Service) JoinGame(ctx context.Context, gameID, userID string) error {
	active, err := s.provider.ActiveGameFor(ctx, userID)
	if err != nil {
		return err
	}
	if active != nil && active.ID != gameID {
		log.Printf("join rejected user_id=%s active_game=%s target_game=%s", userID, active.ID, gameID)
		return ErrPlayerAlreadyInGame(userID, active.ID)
	}

	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateGameState(game, StatusWaiting); err != nil {
		return err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound(userID)
	}
	if game.PlayerByID(userID) != nil {
		return nil
	}

	if err := s.provider.AddPlayer(ctx, game.ID, user.ID); err != nil {
		return err
	}
	log.Printf("player joined game_id=%s user_id=%s", gameID, userID)
	return nil
}

// LeaveLobby removes the user from a waiting game. A departing host hands
// the lobby to the first remaining player in list order; the last player
// leaving deletes the game.
func (s *Service) LeaveLobby(ctx context.Context, gameID, userID string) error {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateGameState(game, StatusWaiting); err != nil {
		return err
	}

	member := game.PlayerByID(userID)
	if member == nil {
		log.Printf("leave ignored game_id=%s user_id=%s not a member", gameID, userID)
		return nil
	}
	wasHost := member.IsHost

	if err := s.provider.RemovePlayer(ctx, game.ID, userID); err != nil {
		return err
	}

	if wasHost {
		var nextHost *Player
		for i := range game.Players {
			if game.Players[i].ID != userID {
				nextHost = &game.Players[i]
				break
			}
		}
		if nextHost != nil {
			log.Printf("host reassigned game_id=%s new_host=%s", gameID, nextHost.ID)
			if err := s.provider.UpdateGame(ctx, game.ID, HostUpdate(nextHost.ID)); err != nil {
				return err
			}
		} else {
			log.Printf("empty lobby removed game_id=%s", gameID)
			if err := s.provider.RemoveGame(ctx, game.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// LeaveGame removes the user from a running game. With two or fewer
// players left in an in-progress game, leaving ends it; the returned flag
// reports that.
func (s *Service) LeaveGame(ctx context.Context, gameID, userID string) (bool, error) {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return false, err
	}

	gameOver := false
	if len(game.Players) <= 2 && game.Status == StatusInProgress {
		if err := s.provider.UpdateGame(ctx, game.ID, StatusUpdate(StatusFinished)); err != nil {
			return false, err
		}
		gameOver = true
	}

	if err := s.provider.RemovePlayer(ctx, game.ID, userID); err != nil {
		return false, err
	}
	log.Printf("player left game_id=%s user_id=%s game_over=%t", gameID, userID, gameOver)
	return gameOver, nil
}

// UpdateSettings persists timer, max score and enabled methods as one
// update. Only waiting games accept settings changes and the new values
// must pass validation.
func (s *Service) UpdateSettings(ctx context.Context, gameID string, timerMinutes, maxScore int, methods []MethodType) error {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateGameState(game, StatusWaiting); err != nil {
		return err
	}

	game.TimerMinutes = timerMinutes
	game.MaxScore = maxScore
	game.EnabledMethods = methods
	if err := s.validator.ValidateGameSettings(game); err != nil {
		return err
	}

	if err := s.provider.UpdateGame(ctx, game.ID, SettingsUpdate(timerMinutes, maxScore, methods)); err != nil {
		return err
	}
	log.Printf("settings updated game_id=%s timer=%d max_score=%d methods=%d",
		gameID, timerMinutes, maxScore, len(methods))
	return nil
}

// StartGame moves a waiting game to in-progress and creates the first
// round. The first active player is the one after the starter in list
// order; the first method is always Description.
func (s *Service) StartGame(ctx context.Context, gameID, userID string) (*TurnInfo, error) {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound(userID)
	}

	if err := s.validator.ValidateGameState(game, StatusWaiting); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateGameSettings(game); err != nil {
		return nil, err
	}

	if err := s.provider.UpdateGame(ctx, game.ID, StatusUpdate(StatusInProgress)); err != nil {
		return nil, err
	}

	turn, err := s.startNextRound(ctx, game, user.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("game started game_id=%s first_active=%s", gameID, turn.ActivePlayer.ID)
	return turn, nil
}

// EndTurn closes the current round with the guessing player as its winner,
// awards one point and either finishes the game or opens the next round.
// The returned flag reports whether the game finished.
func (s *Service) EndTurn(ctx context.Context, gameID, actingPlayerID, guessingPlayerID string) (bool, error) {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return false, err
	}
	acting, err := s.users.UserByID(ctx, actingPlayerID)
	if err != nil {
		return false, err
	}
	if acting == nil {
		return false, ErrUserNotFound(actingPlayerID)
	}

	if err := s.validator.ValidateGameState(game, StatusInProgress); err != nil {
		return false, err
	}

	round := game.CurrentRound()
	if round == nil {
		return false, ErrNoActiveRound
	}
	guesser := game.PlayerByID(guessingPlayerID)
	if guesser == nil {
		return false, ErrUserNotFound(guessingPlayerID)
	}

	if err := s.provider.SetRoundWinner(ctx, round.ID, guessingPlayerID); err != nil {
		return false, err
	}
	if err := s.provider.IncrementScore(ctx, game.ID, guessingPlayerID); err != nil {
		return false, err
	}
	guesser.Score++
	log.Printf("round won game_id=%s round_id=%s winner=%s score=%d", gameID, round.ID, guessingPlayerID, guesser.Score)

	for i := range game.Players {
		if game.Players[i].Score >= game.MaxScore {
			if err := s.finishGame(ctx, game, game.Players[i].ID); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	if _, err := s.startNextRound(ctx, game, round.ActivePlayerID); err != nil {
		return false, err
	}
	return false, nil
}

// TimeUp acknowledges the external round timer: the current round closes
// without a winner or a score change and the next round starts. The same
// progression as EndTurn, minus the guesser.
func (s *Service) TimeUp(ctx context.Context, gameID string) error {
	game, err := s.GameDetails(ctx, gameID)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateGameState(game, StatusInProgress); err != nil {
		return err
	}

	round := game.CurrentRound()
	if round == nil {
		return ErrNoActiveRound
	}

	if _, err := s.startNextRound(ctx, game, round.ActivePlayerID); err != nil {
		return err
	}
	log.Printf("time up game_id=%s round_id=%s", gameID, round.ID)
	return nil
}

func (s *Service) finishGame(ctx context.Context, game *Game, winnerID string) error {
	if err := s.provider.UpdateGame(ctx, game.ID, StatusUpdate(StatusFinished)); err != nil {
		return err
	}
	if err := s.provider.UpdateGame(ctx, game.ID, WinnerUpdate(winnerID)); err != nil {
		return err
	}
	log.Printf("game finished game_id=%s winner=%s", game.ID, winnerID)
	return nil
}
