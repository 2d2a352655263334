package game

import (
	"context"
	"log"
	"math/rand"
)

// nextWord picks an unused word for the game and method type. Words used in
// any prior round of the game are excluded regardless of method; the pick
// among the remainder is uniform random on purpose (rounds should not be
// predictable across games). An empty candidate set means the word bank is
// exhausted, which is an operator problem, not a player-facing one.
func (s *Service) nextWord(ctx context.Context, gameID string, method MethodType) (*Word, error) {
	usedIDs, err := s.provider.UsedWordIDs(ctx, gameID)
	if err != nil {
		return nil, err
	}
	available, err := s.provider.AvailableWords(ctx, method, usedIDs)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		log.Printf("word bank exhausted game_id=%s method=%s used=%d", gameID, method, len(usedIDs))
		return nil, ErrNoAvailableWords
	}
	word := available[rand.Intn(len(available))]
	return &word, nil
}
