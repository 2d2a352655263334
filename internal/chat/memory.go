package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory DataProvider used by tests and the
// no-database development mode.
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string][]Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]Message)}
}

func (m *MemoryStore) SaveMessage(ctx context.Context, gameID, senderID, content string) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	message := Message{
		ID:       uuid.NewString(),
		GameID:   gameID,
		SenderID: senderID,
		Content:  content,
		SentAt:   time.Now().UTC(),
	}
	m.messages[gameID] = append(m.messages[gameID], message)
	return &message, nil
}

func (m *MemoryStore) History(ctx context.Context, gameID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages[gameID]...), nil
}
