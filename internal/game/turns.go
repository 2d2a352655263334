package game

import (
	"context"
	"log"
)

// nextActivePlayer walks the player list round-robin from the current
// active player. The current player missing from the list is a consistency
// breach (a concurrent removal), not a recoverable condition.
func nextActivePlayer(game *Game, currentActiveID string) (*Player, error) {
	currentIndex := -1
	for i := range game.Players {
		if game.Players[i].ID == currentActiveID {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return nil, ErrUserNotFound(currentActiveID)
	}
	next := (currentIndex + 1) % len(game.Players)
	return &game.Players[next], nil
}

// nextMethodType rotates through the full method enumeration. The first
// round of a game is always Description; after that the cycle advances by
// enum position regardless of which methods the lobby enabled.
func nextMethodType(game *Game) MethodType {
	lastRound := game.CurrentRound()
	if lastRound == nil {
		return MethodDescription
	}
	return (lastRound.Method + 1) % MethodCount
}

// startNextRound computes the successor round relative to the given
// player, picks a word and persists the round.
func (s *Service) startNextRound(ctx context.Context, game *Game, currentActiveID string) (*TurnInfo, error) {
	activePlayer, err := nextActivePlayer(game, currentActiveID)
	if err != nil {
		return nil, err
	}
	method := nextMethodType(game)
	word, err := s.nextWord(ctx, game.ID, method)
	if err != nil {
		return nil, err
	}
	if _, err := s.provider.CreateRound(ctx, game.ID, method, word.ID, activePlayer.ID); err != nil {
		return nil, err
	}
	log.Printf("round created game_id=%s active_player=%s method=%s word_id=%d",
		game.ID, activePlayer.Username, method, word.ID)
	return &TurnInfo{ActivePlayer: *activePlayer, Word: *word, Method: method}, nil
}
