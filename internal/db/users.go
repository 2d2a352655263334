package db

import (
	"context"
	"errors"

	"activity-game/internal/game"

	"gorm.io/gorm"
)

// Users is the durable identity store. Score and host flag are game-scoped
// and never touched here.
type Users struct {
	conn *gorm.DB
}

func NewUsers(conn *gorm.DB) *Users {
	return &Users{conn: conn}
}

func (u *Users) UserByID(ctx context.Context, id string) (*game.Player, error) {
	var record User
	err := u.conn.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game.Player{ID: record.ID, Email: record.Email, Username: record.Username}, nil
}

func (u *Users) UserByEmail(ctx context.Context, email string) (*game.Player, error) {
	var record User
	err := u.conn.WithContext(ctx).First(&record, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game.Player{ID: record.ID, Email: record.Email, Username: record.Username}, nil
}

func (u *Users) CreateUser(ctx context.Context, user game.Player) (*game.Player, error) {
	record := User{ID: user.ID, Email: user.Email, Username: user.Username}
	if err := u.conn.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &game.Player{ID: record.ID, Email: record.Email, Username: record.Username}, nil
}

func (u *Users) UpdateUsername(ctx context.Context, id, username string) error {
	result := u.conn.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("username", username)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return game.ErrUserNotFound(id)
	}
	return nil
}
