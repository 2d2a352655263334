package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// GameStatus is the lifecycle state of a session. Waiting games are open
// lobbies, InProgress games have a live round, Finished is terminal. TimeUp
// is an out-of-band marker requested by the client-side round timer; the
// engine acknowledges it but never rests in it.
type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
	StatusTimeUp     GameStatus = "time_up"
)

// MethodType is the gameplay mechanic used for a round. The declaration
// order is the rotation order and is load-bearing: the engine cycles
// (method+1) mod MethodCount.
type MethodType int

const (
	MethodDrawing MethodType = iota
	MethodDescription
	MethodMimic
)

// MethodCount is the size of the full method enumeration. Rotation cycles
// over the full enumeration, not the game's enabled subset.
const MethodCount = 3

var methodNames = map[MethodType]string{
	MethodDrawing:     "drawing",
	MethodDescription: "description",
	MethodMimic:       "mimic",
}

func (m MethodType) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

func (m MethodType) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// ParseMethodType maps a wire name back to its MethodType.
func ParseMethodType(name string) (MethodType, error) {
	for method, methodName := range methodNames {
		if methodName == name {
			return method, nil
		}
	}
	return 0, fmt.Errorf("unknown method type %q", name)
}

func (m MethodType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MethodType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	method, err := ParseMethodType(name)
	if err != nil {
		return err
	}
	*m = method
	return nil
}

// Player carries a durable identity plus the game-scoped score and host
// flag. Score and host are reset per game even though the identity lives on.
type Player struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"is_host"`
}

// Word is a guessing prompt valid for one method type. Reference data,
// never mutated; "unused" is scoped per game across all of its rounds.
type Word struct {
	ID     uint       `json:"id"`
	Value  string     `json:"value"`
	Method MethodType `json:"method"`
}

// Round is one unit of gameplay. Immutable once created except for the
// winner assignment at round close; rounds are append-only and the current
// round is always the last element of Game.Rounds.
type Round struct {
	ID             string     `json:"id"`
	GameID         string     `json:"game_id"`
	Method         MethodType `json:"method"`
	WordID         uint       `json:"word_id"`
	WordValue      string     `json:"word_value"`
	ActivePlayerID string     `json:"active_player_id"`
	WinnerID       string     `json:"winner_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Game is a session. Players are kept in list order (materialization
// order); the round-robin walks that order.
type Game struct {
	ID             string       `json:"id"`
	HostID         string       `json:"host_id"`
	TimerMinutes   int          `json:"timer_minutes"`
	MaxScore       int          `json:"max_score"`
	Status         GameStatus   `json:"status"`
	EnabledMethods []MethodType `json:"enabled_methods"`
	Players        []Player     `json:"players"`
	Rounds         []Round      `json:"rounds"`
	WinnerID       string       `json:"winner_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// CurrentRound returns the last round in history, or nil before the first
// round exists.
func (g *Game) CurrentRound() *Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return &g.Rounds[len(g.Rounds)-1]
}

// PlayerByID returns the game-scoped player entry, or nil if the user is
// not a member.
func (g *Game) PlayerByID(userID string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == userID {
			return &g.Players[i]
		}
	}
	return nil
}

// GameUpdate is a partial update of a game record. Nil fields are left
// untouched by the provider.
type GameUpdate struct {
	Status         *GameStatus
	HostID         *string
	WinnerID       *string
	TimerMinutes   *int
	MaxScore       *int
	EnabledMethods []MethodType
}

func StatusUpdate(status GameStatus) GameUpdate {
	return GameUpdate{Status: &status}
}

func HostUpdate(hostID string) GameUpdate {
	return GameUpdate{HostID: &hostID}
}

func WinnerUpdate(winnerID string) GameUpdate {
	return GameUpdate{WinnerID: &winnerID}
}

func SettingsUpdate(timerMinutes, maxScore int, methods []MethodType) GameUpdate {
	return GameUpdate{
		TimerMinutes:   &timerMinutes,
		MaxScore:       &maxScore,
		EnabledMethods: methods,
	}
}

// TurnInfo describes the round the engine just created.
type TurnInfo struct {
	ActivePlayer Player     `json:"active_player"`
	Word         Word       `json:"word"`
	Method       MethodType `json:"method"`
}
