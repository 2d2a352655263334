package db

import (
	"context"

	"activity-game/internal/game"

	"gorm.io/gorm"
)

// StatsStore implements stats.DataProvider on GORM.
type StatsStore struct {
	conn  *gorm.DB
	games *GameProvider
}

func NewStatsStore(conn *gorm.DB) *StatsStore {
	return &StatsStore{conn: conn, games: NewGameProvider(conn)}
}

func (s *StatsStore) FinishedGames(ctx context.Context) ([]game.Game, error) {
	var records []Game
	err := s.conn.WithContext(ctx).
		Where("status = ?", string(game.StatusFinished)).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return s.load(ctx, records)
}

func (s *StatsStore) GamesForUser(ctx context.Context, userID string) ([]game.Game, error) {
	var records []Game
	err := s.conn.WithContext(ctx).
		Joins("JOIN game_players ON game_players.game_id = games.id").
		Where("game_players.user_id = ? AND games.status = ?", userID, string(game.StatusFinished)).
		Order("games.created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return s.load(ctx, records)
}

func (s *StatsStore) load(ctx context.Context, records []Game) ([]game.Game, error) {
	games := make([]game.Game, 0, len(records))
	for i := range records {
		loaded, err := s.games.loadGame(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		games = append(games, *loaded)
	}
	return games, nil
}
