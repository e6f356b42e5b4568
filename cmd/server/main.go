package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veridian/identity-service/internal/api"
	"github.com/veridian/identity-service/internal/core/service"
	"github.com/veridian/identity-service/internal/core/token"
	"github.com/veridian/identity-service/internal/infrastructure/config"
	mongodb "github.com/veridian/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/veridian/identity-service/internal/infrastructure/db/redis"
	"github.com/veridian/identity-service/internal/infrastructure/queue"
	"github.com/veridian/identity-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backends ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Core wiring ---
	userRepo := mongodb.NewUserRepository(db)
	refreshStore := redisdb.NewRefreshTokenStore(rdb)
	auditRepo := mongodb.NewAuditRepository(db)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, refreshStore, codec, cfg.RefreshTokenTTL, dispatcher)
	sessionService := service.NewSessionService(userRepo, refreshStore, codec, dispatcher)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		SessionService: sessionService,
		AuditQuery:     auditRepo,
		AuditPublisher: dispatcher,
		Mongo:          db,
		Redis:          rdb,
		Log:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
