package server

import (
	"context"

	"activity-game/internal/chat"
	"activity-game/internal/config"
	"activity-game/internal/events"
	"activity-game/internal/game"
	"activity-game/internal/stats"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// UserStore is the durable identity store behind registration and the
// auth middleware.
type UserStore interface {
	UserByID(ctx context.Context, id string) (*game.Player, error)
	UserByEmail(ctx context.Context, email string) (*game.Player, error)
	CreateUser(ctx context.Context, user game.Player) (*game.Player, error)
	UpdateUsername(ctx context.Context, id, username string) error
}

type Server struct {
	cfg   config.Config
	games *game.Service
	users UserStore
	chat  *chat.Service
	stats *stats.Service
	hub   *events.Hub
}

func New(cfg config.Config, games *game.Service, users UserStore, chatSvc *chat.Service, statsSvc *stats.Service, hub *events.Hub) *Server {
	return &Server{
		cfg:   cfg,
		games: games,
		users: users,
		chat:  chatSvc,
		stats: statsSvc,
		hub:   hub,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	api.POST("/auth/register", s.handleRegister)

	authed := api.Group("", s.requireUser())
	authed.GET("/auth/me", s.handleMe)
	authed.PUT("/auth/me", s.handleUpdateMe)

	games := authed.Group("/games")
	games.POST("", s.handleCreateGame)
	games.GET("/current", s.handleCurrentGame)
	games.GET("/:gameId", s.handleGameDetails)
	games.POST("/:gameId/join", s.handleJoinGame)
	games.POST("/:gameId/start", s.handleStartGame)
	games.POST("/:gameId/end-turn", s.handleEndTurn)
	games.POST("/:gameId/time-up", s.handleTimeUp)
	games.POST("/:gameId/leave-lobby", s.handleLeaveLobby)
	games.POST("/:gameId/leave", s.handleLeaveGame)
	games.PUT("/:gameId/settings", s.handleUpdateSettings)
	games.GET("/:gameId/events", s.handleEvents)
	games.POST("/:gameId/chat/messages", s.handleSendMessage)
	games.GET("/:gameId/chat/messages", s.handleChatHistory)

	statistics := authed.Group("/statistics")
	statistics.GET("/global", s.handleGlobalStatistics)
	statistics.GET("/me", s.handleUserStatistics)

	return router
}
