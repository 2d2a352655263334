package main

import (
	"log"
	"net/http"
	"os"

	"activity-game/internal/chat"
	"activity-game/internal/config"
	"activity-game/internal/db"
	"activity-game/internal/events"
	"activity-game/internal/game"
	"activity-game/internal/server"
	"activity-game/internal/stats"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var (
		provider   game.DataProvider
		directory  game.UserDirectory
		users      server.UserStore
		chatStore  chat.DataProvider
		statsStore stats.DataProvider
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if os.Getenv("AUTO_MIGRATE") == "1" {
			if err := db.Migrate(conn); err != nil {
				log.Fatalf("database migration failed: %v", err)
			}
		}
		userStore := db.NewUsers(conn)
		provider = db.NewGameProvider(conn)
		directory = userStore
		users = userStore
		chatStore = db.NewChatStore(conn)
		statsStore = db.NewStatsStore(conn)
	} else {
		log.Println("DATABASE_URL not set, running with in-memory storage")
		memory := game.NewMemoryProvider()
		seedStarterWords(memory)
		provider = memory
		directory = memory
		users = memory
		chatStore = chat.NewMemoryStore()
		statsStore = memory
	}

	games := game.NewService(provider, directory, game.RulesValidator{}, game.Defaults{
		TimerMinutes: cfg.DefaultTimerMinutes,
		MaxScore:     cfg.DefaultMaxScore,
	})
	srv := server.New(cfg, games, users, chat.NewService(chatStore), stats.NewService(statsStore, directory), events.NewHub())

	log.Printf("activity game server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}

// seedStarterWords gives the in-memory mode a playable word bank.
func seedStarterWords(memory *game.MemoryProvider) {
	starters := map[game.MethodType][]string{
		game.MethodDrawing:     {"lighthouse", "umbrella", "volcano", "snowman", "bicycle", "octopus"},
		game.MethodDescription: {"gravity", "echo", "deadline", "sunrise", "appetite", "rumor"},
		game.MethodMimic:       {"juggling", "rowing", "sneezing", "conducting", "tightrope", "fishing"},
	}
	id := uint(0)
	for method, values := range starters {
		for _, value := range values {
			id++
			memory.SeedWords(game.Word{ID: id, Value: value, Method: method})
		}
	}
}
