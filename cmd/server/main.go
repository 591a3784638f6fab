// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/auth"
	"github.com/aramdraft/aramdraft/internal/broadcast"
	"github.com/aramdraft/aramdraft/internal/cache"
	"github.com/aramdraft/aramdraft/internal/catalog"
	"github.com/aramdraft/aramdraft/internal/config"
	"github.com/aramdraft/aramdraft/internal/database"
	"github.com/aramdraft/aramdraft/internal/engine"
	"github.com/aramdraft/aramdraft/internal/handlers"
	"github.com/aramdraft/aramdraft/internal/room"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := auth.Init(); err != nil {
		log.Fatalf("auth init: %v", err)
	}

	ctx := context.Background()

	if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("database schema: %v", err)
	}

	// Redis is optional; without it the catalog simply hits the CDN on
	// every boot.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		var err error
		rdb, err = cache.Connect(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("continuing without redis catalog cache")
			rdb = nil
		}
	}

	champs := catalog.NewProvider(cfg.DDragonBaseURL, cfg.DDragonLocale, rdb, logger)
	if err := champs.Load(ctx); err != nil {
		logger.Warn("match generation unavailable until catalog loads on a future restart")
	}

	rooms := room.NewStore()
	conns := room.NewConnStore()
	hub := broadcast.NewHub(conns.ConnsInRoom, logger)
	eng := engine.New(rooms, conns, champs, database.MatchRepo{}, hub, logger)

	handler := handlers.Routes(cfg, logger, rooms, eng, hub, champs)

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
