package main // Entry point package

import (
	"context"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"             // structured logging

	appcfg "github.com/iliyamo/direct-chat/internal/config"
	"github.com/iliyamo/direct-chat/internal/database"
	"github.com/iliyamo/direct-chat/internal/handler"
	"github.com/iliyamo/direct-chat/internal/logger"
	"github.com/iliyamo/direct-chat/internal/queue"
	"github.com/iliyamo/direct-chat/internal/repository"
	"github.com/iliyamo/direct-chat/internal/router"
	"github.com/iliyamo/direct-chat/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appcfg.Load() // fatal on missing required vars

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("cannot open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	media, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatal("cannot init media storage", zap.Error(err))
	}

	// Redis is optional; a nil client disables rate limiting and caching.
	rdb := appcfg.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and sidebar cache disabled")
	}

	users := repository.NewUserRepo(db)
	messages := repository.NewMessageRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, media)
	messageHandler := handler.NewMessageHandler(users, messages, media)

	// Background consumer turning message.sent events into delivery log
	// entries. It reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartMessageConsumer(log); err != nil {
			log.Error("message consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	router.Register(e, cfg, authHandler, messageHandler, users, rdb)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
