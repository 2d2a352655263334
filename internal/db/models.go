package db

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Username  string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Game struct {
	ID             string         `gorm:"primaryKey;size:36"`
	HostID         string         `gorm:"size:64;index"`
	Status         string         `gorm:"size:16;not null;index"`
	TimerMinutes   int            `gorm:"not null"`
	MaxScore       int            `gorm:"not null"`
	EnabledMethods datatypes.JSON `gorm:"type:jsonb;not null"`
	WinnerID       string         `gorm:"size:64"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	Players        []GamePlayer
	Rounds         []Round
}

// GamePlayer carries the game-scoped attributes of a durable user: score
// and host flag live here, not on users.
type GamePlayer struct {
	ID       uint      `gorm:"primaryKey"`
	GameID   string    `gorm:"size:36;not null;index;uniqueIndex:idx_game_players_game_user"`
	UserID   string    `gorm:"size:64;not null;uniqueIndex:idx_game_players_game_user"`
	Score    int       `gorm:"not null;default:0"`
	IsHost   bool      `gorm:"not null;default:false"`
	JoinedAt time.Time `gorm:"not null"`
}

type Round struct {
	ID             string    `gorm:"primaryKey;size:36"`
	GameID         string    `gorm:"size:36;not null;index"`
	Method         string    `gorm:"size:16;not null"`
	WordID         uint      `gorm:"not null;index"`
	ActivePlayerID string    `gorm:"size:64;not null"`
	WinnerID       string    `gorm:"size:64"`
	CreatedAt      time.Time `gorm:"not null"`
}

type Word struct {
	ID     uint   `gorm:"primaryKey"`
	Value  string `gorm:"size:128;not null;uniqueIndex:idx_words_value_method"`
	Method string `gorm:"size:16;not null;index;uniqueIndex:idx_words_value_method"`
}

type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36"`
	GameID    string    `gorm:"size:36;not null;index"`
	SenderID  string    `gorm:"size:64;not null"`
	Content   string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
