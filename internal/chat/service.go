// Package chat stores and serves per-game chat history. Chat rides the
// same event channel as the game but is otherwise independent of the
// session rules.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

const maxMessageLength = 500

type Message struct {
	ID       string    `json:"id"`
	GameID   string    `json:"game_id"`
	SenderID string    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

// DataProvider is the persistence contract for chat messages.
type DataProvider interface {
	SaveMessage(ctx context.Context, gameID, senderID, content string) (*Message, error)
	History(ctx context.Context, gameID string) ([]Message, error)
}

type Service struct {
	provider DataProvider
}

func NewService(provider DataProvider) *Service {
	return &Service{provider: provider}
}

func (s *Service) SaveMessage(ctx context.Context, gameID, senderID, content string) (*Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errors.New("message is required")
	}
	if len(trimmed) > maxMessageLength {
		return nil, errors.New("message is too long")
	}
	message, err := s.provider.SaveMessage(ctx, gameID, senderID, trimmed)
	if err != nil {
		return nil, err
	}
	log.Printf("chat message saved game_id=%s sender=%s message_id=%s", gameID, senderID, message.ID)
	return message, nil
}

func (s *Service) History(ctx context.Context, gameID string) ([]Message, error) {
	return s.provider.History(ctx, gameID)
}
