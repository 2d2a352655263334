// Package stats computes aggregate results over finished games.
package stats

import (
	"context"
	"math"
	"sort"

	"activity-game/internal/game"
)

// DataProvider supplies the finished-game history the aggregates are
// computed from.
type DataProvider interface {
	FinishedGames(ctx context.Context) ([]game.Game, error)
	GamesForUser(ctx context.Context, userID string) ([]game.Game, error)
}

type Ranking struct {
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
}

type Global struct {
	TotalGames   int       `json:"total_games"`
	AverageScore float64   `json:"average_score"`
	WinRate      float64   `json:"win_rate"`
	LossRate     float64   `json:"loss_rate"`
	Rankings     []Ranking `json:"player_rankings"`
}

type UserStats struct {
	Username     string  `json:"username"`
	GamesPlayed  int     `json:"games_played"`
	GamesWon     int     `json:"games_won"`
	GamesLost    int     `json:"games_lost"`
	WinRate      float64 `json:"win_rate"`
	AverageScore float64 `json:"average_score"`
}

type Service struct {
	provider DataProvider
	users    game.UserDirectory
}

func NewService(provider DataProvider, users game.UserDirectory) *Service {
	return &Service{provider: provider, users: users}
}

// Global aggregates every finished game: the mean of per-game average
// scores, the share of games that produced a winner, and per-player total
// score rankings.
func (s *Service) Global(ctx context.Context) (*Global, error) {
	finished, err := s.provider.FinishedGames(ctx)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return &Global{Rankings: []Ranking{}}, nil
	}

	var scoreSum float64
	decided := 0
	totals := make(map[string]*Ranking)
	var order []string
	for _, g := range finished {
		if len(g.Players) > 0 {
			var gameSum float64
			for _, player := range g.Players {
				gameSum += float64(player.Score)
			}
			scoreSum += gameSum / float64(len(g.Players))
		}
		if g.WinnerID != "" {
			decided++
		}
		for _, player := range g.Players {
			entry, ok := totals[player.ID]
			if !ok {
				entry = &Ranking{Username: player.Username}
				totals[player.ID] = entry
				order = append(order, player.ID)
			}
			entry.TotalScore += player.Score
		}
	}

	rankings := make([]Ranking, 0, len(order))
	for _, id := range order {
		rankings = append(rankings, *totals[id])
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalScore > rankings[j].TotalScore
	})

	winRate := float64(decided) / float64(len(finished)) * 100
	return &Global{
		TotalGames:   len(finished),
		AverageScore: round2(scoreSum / float64(len(finished))),
		WinRate:      round2(winRate),
		LossRate:     round2(100 - winRate),
		Rankings:     rankings,
	}, nil
}

// ForUser aggregates the user's finished games.
func (s *Service) ForUser(ctx context.Context, userID string) (*UserStats, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, game.ErrUserNotFound(userID)
	}

	games, err := s.provider.GamesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	played := len(games)
	won := 0
	var scoreSum float64
	for _, g := range games {
		if g.WinnerID == userID {
			won++
		}
		if player := g.PlayerByID(userID); player != nil {
			scoreSum += float64(player.Score)
		}
	}

	result := &UserStats{
		Username:    user.Username,
		GamesPlayed: played,
		GamesWon:    won,
		GamesLost:   played - won,
	}
	if played > 0 {
		result.WinRate = round2(float64(won) / float64(played) * 100)
		result.AverageScore = round2(scoreSum / float64(played))
	}
	return result, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
