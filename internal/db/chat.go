package db

import (
	"context"
	"time"

	"activity-game/internal/chat"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatStore implements chat.DataProvider on GORM.
type ChatStore struct {
	conn *gorm.DB
}

func NewChatStore(conn *gorm.DB) *ChatStore {
	return &ChatStore{conn: conn}
}

func (s *ChatStore) SaveMessage(ctx context.Context, gameID, senderID, content string) (*chat.Message, error) {
	record := ChatMessage{
		ID:        uuid.NewString(),
		GameID:    gameID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.conn.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &chat.Message{
		ID:       record.ID,
		GameID:   record.GameID,
		SenderID: record.SenderID,
		Content:  record.Content,
		SentAt:   record.CreatedAt,
	}, nil
}

func (s *ChatStore) History(ctx context.Context, gameID string) ([]chat.Message, error) {
	var records []ChatMessage
	err := s.conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	messages := make([]chat.Message, 0, len(records))
	for _, record := range records {
		messages = append(messages, chat.Message{
			ID:       record.ID,
			GameID:   record.GameID,
			SenderID: record.SenderID,
			Content:  record.Content,
			SentAt:   record.CreatedAt,
		})
	}
	return messages, nil
}
