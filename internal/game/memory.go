package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProvider is an in-memory DataProvider and UserDirectory. It backs
// the test suite and the no-database development mode; the behavior it
// exposes matches the database provider so either can sit under the
// orchestrator.
type MemoryProvider struct {
	mu    sync.Mutex
	users map[string]Player
	games map[string]*Game
	words map[uint]Word
	order []string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		users: make(map[string]Player),
		games: make(map[string]*Game),
		words: make(map[uint]Word),
	}
}

// AddUser registers a durable identity.
func (m *MemoryProvider) AddUser(user Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.Score = 0
	user.IsHost = false
	m.users[user.ID] = user
}

// CreateUser implements the user store used by registration.
func (m *MemoryProvider) CreateUser(ctx context.Context, user Player) (*Player, error) {
	m.AddUser(user)
	stored := user
	return &stored, nil
}

func (m *MemoryProvider) UserByID(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (m *MemoryProvider) UpdateUsername(ctx context.Context, id, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound(id)
	}
	user.Username = username
	m.users[id] = user
	return nil
}

func (m *MemoryProvider) UserByEmail(ctx context.Context, email string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			stored := user
			return &stored, nil
		}
	}
	return nil, nil
}

// SeedWords loads the word bank.
func (m *MemoryProvider) SeedWords(words ...Word) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, word := range words {
		m.words[word.ID] = word
	}
}

func (m *MemoryProvider) GameByID(ctx context.Context, id string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	return cloneGame(game), nil
}

func (m *MemoryProvider) CreateGame(ctx context.Context, hostID string, timerMinutes, maxScore int) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	host, ok := m.users[hostID]
	if !ok {
		return nil, ErrUserNotFound(hostID)
	}
	game := &Game{
		ID:             uuid.NewString(),
		TimerMinutes:   timerMinutes,
		MaxScore:       maxScore,
		Status:         StatusWaiting,
		EnabledMethods: []MethodType{MethodDrawing, MethodDescription, MethodMimic},
		Players:        []Player{{ID: host.ID, Email: host.Email, Username: host.Username}},
		CreatedAt:      time.Now().UTC(),
	}
	m.games[game.ID] = game
	m.order = append(m.order, game.ID)
	return cloneGame(game), nil
}

func (m *MemoryProvider) UpdateGame(ctx context.Context, gameID string, update GameUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return ErrGameNotFound(gameID)
	}
	if update.Status != nil {
		game.Status = *update.Status
	}
	if update.HostID != nil {
		game.HostID = *update.HostID
		for i := range game.Players {
			game.Players[i].IsHost = game.Players[i].ID == *update.HostID
		}
	}
	if update.WinnerID != nil {
		game.WinnerID = *update.WinnerID
	}
	if update.TimerMinutes != nil {
		game.TimerMinutes = *update.TimerMinutes
	}
	if update.MaxScore != nil {
		game.MaxScore = *update.MaxScore
	}
	if update.EnabledMethods != nil {
		game.EnabledMethods = append([]MethodType(nil), update.EnabledMethods...)
	}
	return nil
}

func (m *MemoryProvider) AddPlayer(ctx context.Context, gameID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return ErrGameNotFound(gameID)
	}
	for i := range game.Players {
		if game.Players[i].ID == userID {
			return nil
		}
	}
	user, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound(userID)
	}
	game.Players = append(game.Players, Player{ID: user.ID, Email: user.Email, Username: user.Username})
	return nil
}

func (m *MemoryProvider) RemovePlayer(ctx context.Context, gameID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return ErrGameNotFound(gameID)
	}
	players := game.Players[:0]
	for _, player := range game.Players {
		if player.ID != userID {
			players = append(players, player)
		}
	}
	game.Players = players
	return nil
}

func (m *MemoryProvider) ActiveGameFor(ctx context.Context, userID string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		game, ok := m.games[id]
		if !ok || game.Status == StatusFinished {
			continue
		}
		for i := range game.Players {
			if game.Players[i].ID == userID {
				return cloneGame(game), nil
			}
		}
	}
	return nil, nil
}

func (m *MemoryProvider) SetRoundWinner(ctx context.Context, roundID, winnerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, game := range m.games {
		for i := range game.Rounds {
			if game.Rounds[i].ID == roundID {
				game.Rounds[i].WinnerID = winnerID
				return nil
			}
		}
	}
	return ErrNoActiveRound
}

func (m *MemoryProvider) UsedWordIDs(ctx context.Context, gameID string) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return nil, ErrGameNotFound(gameID)
	}
	ids := make([]uint, 0, len(game.Rounds))
	for _, round := range game.Rounds {
		ids = append(ids, round.WordID)
	}
	return ids, nil
}

func (m *MemoryProvider) AvailableWords(ctx context.Context, method MethodType, excludeIDs []uint) ([]Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	excluded := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var available []Word
	for _, word := range m.words {
		if word.Method != method {
			continue
		}
		if _, used := excluded[word.ID]; used {
			continue
		}
		available = append(available, word)
	}
	return available, nil
}

func (m *MemoryProvider) CreateRound(ctx context.Context, gameID string, method MethodType, wordID uint, activePlayerID string) (*Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return nil, ErrGameNotFound(gameID)
	}
	round := Round{
		ID:             uuid.NewString(),
		GameID:         gameID,
		Method:         method,
		WordID:         wordID,
		WordValue:      m.words[wordID].Value,
		ActivePlayerID: activePlayerID,
		CreatedAt:      time.Now().UTC(),
	}
	game.Rounds = append(game.Rounds, round)
	stored := round
	return &stored, nil
}

func (m *MemoryProvider) IncrementScore(ctx context.Context, gameID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return ErrGameNotFound(gameID)
	}
	for i := range game.Players {
		if game.Players[i].ID == userID {
			game.Players[i].Score++
			return nil
		}
	}
	return ErrUserNotFound(userID)
}

func (m *MemoryProvider) RemoveGame(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
	for i, id := range m.order {
		if id == gameID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// FinishedGames satisfies the statistics provider contract.
func (m *MemoryProvider) FinishedGames(ctx context.Context) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var finished []Game
	for _, id := range m.order {
		game, ok := m.games[id]
		if ok && game.Status == StatusFinished {
			finished = append(finished, *cloneGame(game))
		}
	}
	return finished, nil
}

// GamesForUser returns the user's finished games.
func (m *MemoryProvider) GamesForUser(ctx context.Context, userID string) ([]Game, error) {
	finished, err := m.FinishedGames(ctx)
	if err != nil {
		return nil, err
	}
	var games []Game
	for _, game := range finished {
		if game.PlayerByID(userID) != nil {
			games = append(games, game)
		}
	}
	return games, nil
}

func cloneGame(game *Game) *Game {
	clone := *game
	clone.Players = append([]Player(nil), game.Players...)
	clone.Rounds = append([]Round(nil), game.Rounds...)
	clone.EnabledMethods = append([]MethodType(nil), game.EnabledMethods...)
	return &clone
}
