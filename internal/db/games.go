package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"activity-game/internal/game"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameProvider implements game.DataProvider on GORM. Each call reads or
// writes the authoritative rows; nothing is cached between calls. Races
// between concurrent callers on one game are bounded here by the unique
// indexes, not prevented.
type GameProvider struct {
	conn *gorm.DB
}

func NewGameProvider(conn *gorm.DB) *GameProvider {
	return &GameProvider{conn: conn}
}

type playerRow struct {
	UserID   string
	Email    string
	Username string
	Score    int
	IsHost   bool
}

type roundRow struct {
	ID             string
	GameID         string
	Method         string
	WordID         uint
	WordValue      string
	ActivePlayerID string
	WinnerID       string
	CreatedAt      time.Time
}

func (p *GameProvider) GameByID(ctx context.Context, id string) (*game.Game, error) {
	var record Game
	err := p.conn.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p.loadGame(ctx, &record)
}

func (p *GameProvider) loadGame(ctx context.Context, record *Game) (*game.Game, error) {
	methods, err := methodsFromJSON(record.EnabledMethods)
	if err != nil {
		return nil, err
	}

	var players []playerRow
	err = p.conn.WithContext(ctx).
		Table("game_players").
		Select("game_players.user_id, users.email, users.username, game_players.score, game_players.is_host").
		Joins("JOIN users ON users.id = game_players.user_id").
		Where("game_players.game_id = ?", record.ID).
		Order("game_players.joined_at ASC, game_players.id ASC").
		Scan(&players).Error
	if err != nil {
		return nil, err
	}

	var rounds []roundRow
	err = p.conn.WithContext(ctx).
		Table("rounds").
		Select("rounds.id, rounds.game_id, rounds.method, rounds.word_id, words.value AS word_value, rounds.active_player_id, rounds.winner_id, rounds.created_at").
		Joins("JOIN words ON words.id = rounds.word_id").
		Where("rounds.game_id = ?", record.ID).
		Order("rounds.created_at ASC, rounds.id ASC").
		Scan(&rounds).Error
	if err != nil {
		return nil, err
	}

	result := &game.Game{
		ID:             record.ID,
		HostID:         record.HostID,
		TimerMinutes:   record.TimerMinutes,
		MaxScore:       record.MaxScore,
		Status:         game.GameStatus(record.Status),
		EnabledMethods: methods,
		WinnerID:       record.WinnerID,
		CreatedAt:      record.CreatedAt,
	}
	for _, row := range players {
		result.Players = append(result.Players, game.Player{
			ID:       row.UserID,
			Email:    row.Email,
			Username: row.Username,
			Score:    row.Score,
			IsHost:   row.IsHost,
		})
	}
	for _, row := range rounds {
		method, err := game.ParseMethodType(row.Method)
		if err != nil {
			return nil, err
		}
		result.Rounds = append(result.Rounds, game.Round{
			ID:             row.ID,
			GameID:         row.GameID,
			Method:         method,
			WordID:         row.WordID,
			WordValue:      row.WordValue,
			ActivePlayerID: row.ActivePlayerID,
			WinnerID:       row.WinnerID,
			CreatedAt:      row.CreatedAt,
		})
	}
	return result, nil
}

func (p *GameProvider) CreateGame(ctx context.Context, hostID string, timerMinutes, maxScore int) (*game.Game, error) {
	allMethods, err := methodsToJSON([]game.MethodType{game.MethodDrawing, game.MethodDescription, game.MethodMimic})
	if err != nil {
		return nil, err
	}
	record := Game{
		ID:             uuid.NewString(),
		Status:         string(game.StatusWaiting),
		TimerMinutes:   timerMinutes,
		MaxScore:       maxScore,
		EnabledMethods: allMethods,
	}
	err = p.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		member := GamePlayer{
			GameID:   record.ID,
			UserID:   hostID,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return p.GameByID(ctx, record.ID)
}

func (p *GameProvider) UpdateGame(ctx context.Context, gameID string, update game.GameUpdate) error {
	fields := make(map[string]any)
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if update.WinnerID != nil {
		fields["winner_id"] = *update.WinnerID
	}
	if update.TimerMinutes != nil {
		fields["timer_minutes"] = *update.TimerMinutes
	}
	if update.MaxScore != nil {
		fields["max_score"] = *update.MaxScore
	}
	if update.EnabledMethods != nil {
		encoded, err := methodsToJSON(update.EnabledMethods)
		if err != nil {
			return err
		}
		fields["enabled_methods"] = encoded
	}
	if update.HostID != nil {
		fields["host_id"] = *update.HostID
	}

	return p.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&Game{}).Where("id = ?", gameID).Updates(fields).Error; err != nil {
				return err
			}
		}
		if update.HostID != nil {
			if err := tx.Model(&GamePlayer{}).Where("game_id = ?", gameID).
				Update("is_host", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&GamePlayer{}).Where("game_id = ? AND user_id = ?", gameID, *update.HostID).
				Update("is_host", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *GameProvider) AddPlayer(ctx context.Context, gameID, userID string) error {
	member := GamePlayer{GameID: gameID, UserID: userID}
	return p.conn.WithContext(ctx).
		Where(GamePlayer{GameID: gameID, UserID: userID}).
		Attrs(GamePlayer{JoinedAt: time.Now().UTC()}).
		FirstOrCreate(&member).Error
}

func (p *GameProvider) RemovePlayer(ctx context.Context, gameID, userID string) error {
	return p.conn.WithContext(ctx).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Delete(&GamePlayer{}).Error
}

func (p *GameProvider) ActiveGameFor(ctx context.Context, userID string) (*game.Game, error) {
	var record Game
	err := p.conn.WithContext(ctx).
		Joins("JOIN game_players ON game_players.game_id = games.id").
		Where("game_players.user_id = ? AND games.status <> ?", userID, string(game.StatusFinished)).
		Order("games.created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p.loadGame(ctx, &record)
}

func (p *GameProvider) SetRoundWinner(ctx context.Context, roundID, winnerID string) error {
	return p.conn.WithContext(ctx).
		Model(&Round{}).
		Where("id = ?", roundID).
		Update("winner_id", winnerID).Error
}

func (p *GameProvider) UsedWordIDs(ctx context.Context, gameID string) ([]uint, error) {
	var ids []uint
	err := p.conn.WithContext(ctx).
		Model(&Round{}).
		Where("game_id = ?", gameID).
		Pluck("word_id", &ids).Error
	return ids, err
}

func (p *GameProvider) AvailableWords(ctx context.Context, method game.MethodType, excludeIDs []uint) ([]game.Word, error) {
	query := p.conn.WithContext(ctx).Model(&Word{}).Where("method = ?", method.String())
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	var records []Word
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	words := make([]game.Word, 0, len(records))
	for _, record := range records {
		parsed, err := game.ParseMethodType(record.Method)
		if err != nil {
			return nil, err
		}
		words = append(words, game.Word{ID: record.ID, Value: record.Value, Method: parsed})
	}
	return words, nil
}

func (p *GameProvider) CreateRound(ctx context.Context, gameID string, method game.MethodType, wordID uint, activePlayerID string) (*game.Round, error) {
	record := Round{
		ID:             uuid.NewString(),
		GameID:         gameID,
		Method:         method.String(),
		WordID:         wordID,
		ActivePlayerID: activePlayerID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := p.conn.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	var word Word
	if err := p.conn.WithContext(ctx).First(&word, "id = ?", wordID).Error; err != nil {
		return nil, err
	}
	return &game.Round{
		ID:             record.ID,
		GameID:         record.GameID,
		Method:         method,
		WordID:         wordID,
		WordValue:      word.Value,
		ActivePlayerID: activePlayerID,
		CreatedAt:      record.CreatedAt,
	}, nil
}

func (p *GameProvider) IncrementScore(ctx context.Context, gameID, userID string) error {
	return p.conn.WithContext(ctx).
		Model(&GamePlayer{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		UpdateColumn("score", gorm.Expr("score + 1")).Error
}

func (p *GameProvider) RemoveGame(ctx context.Context, gameID string) error {
	return p.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", gameID).Delete(&Round{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&GamePlayer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Game{}, "id = ?", gameID).Error
	})
}

func methodsToJSON(methods []game.MethodType) (datatypes.JSON, error) {
	names := make([]string, 0, len(methods))
	for _, method := range methods {
		names = append(names, method.String())
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func methodsFromJSON(data datatypes.JSON) ([]game.MethodType, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	methods := make([]game.MethodType, 0, len(names))
	for _, name := range names {
		method, err := game.ParseMethodType(name)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	return methods, nil
}
