package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/config"
	"github.com/Hawk5760/calmora-well/internal/crypto"
	"github.com/Hawk5760/calmora-well/internal/database"
	"github.com/Hawk5760/calmora-well/internal/httpapi"
	"github.com/Hawk5760/calmora-well/internal/httpapi/handlers"
	"github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/revocation"
	"github.com/Hawk5760/calmora-well/internal/services/affirm"
	"github.com/Hawk5760/calmora-well/internal/services/insight"
	"github.com/Hawk5760/calmora-well/internal/services/journal"
	"github.com/Hawk5760/calmora-well/internal/services/mood"
	"github.com/Hawk5760/calmora-well/internal/services/puzzle"
	"github.com/Hawk5760/calmora-well/internal/services/twofa"
	"github.com/Hawk5760/calmora-well/internal/token"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	cipher, err := crypto.NewCipher(cfg.TwoFA.EncryptionKey)
	if err != nil {
		logger.Fatal("2fa encryption key", zap.Error(err))
	}

	tokens := token.New(cfg.Token)
	revocations := revocation.New(redisClient, "calmora")

	twofaSvc := twofa.New(twofa.NewPGStore(pool), cipher, cfg.TwoFA.Issuer, logger)
	moodSvc := mood.New(mood.NewPGStore(pool), logger)
	journalSvc := journal.New(journal.NewPGStore(pool), logger)
	affirmSvc := affirm.New(affirm.NewPGStore(pool))
	puzzleSvc := puzzle.New(puzzle.NewPGStore(pool))

	var completer insight.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = insight.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
	insightSvc := insight.New(completer, moodSvc, journalSvc, logger)

	auth := middleware.NewAuth(tokens, revocations)
	limiter := middleware.NewRateLimiter(redisClient, "calmora")

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    handlers.NewAuthHandler(revocations, logger),
		TwoFA:   handlers.NewTwoFAHandler(twofaSvc, logger),
		Mood:    handlers.NewMoodHandler(moodSvc, logger),
		Journal: handlers.NewJournalHandler(journalSvc, logger),
		Affirm:  handlers.NewAffirmHandler(affirmSvc, logger),
		Puzzle:  handlers.NewPuzzleHandler(puzzleSvc, logger),
		Insight: handlers.NewInsightHandler(insightSvc, logger),
		Admin:   handlers.NewAdminHandler(pool, logger),
	}, auth, limiter, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
