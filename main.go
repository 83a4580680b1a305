package main

import (
	"context"
	"donow/handlers"
	"donow/service"
	"donow/store"
	"donow/store/memstore"
	"donow/utils"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("environment: ", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the database connection pool
	var db store.Transactor
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		db = memstore.New()
	} else {
		dbPool, err := store.OpenDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		pg := store.New(dbPool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		db = pg
	}

	activity := utils.NewActivityTracker(nil)
	if cfg.RedisURL != "" {
		redisPool, err := utils.OpenRedisPool(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisPool.Close()
		activity = utils.NewActivityTracker(redisPool)
	}

	hasher, err := utils.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Invalid BCRYPT_COST: %v", err)
	}
	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Invalid JWT_SECRET: %v", err)
	}
	auth, err := service.NewAuthService(db, hasher, tokens)
	if err != nil {
		log.Fatalf("Failed to set up authentication: %v", err)
	}

	var notifier utils.SignupNotifier = utils.NopNotifier{}
	if cfg.MailEnabled() {
		notifier = utils.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.NotifyFrom, cfg.NotifyTo)
	}

	h := handlers.New(auth, service.NewTaskService(db), activity, notifier)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.WithTimeout(h.Routes(), cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}()

	// Start the server
	log.Printf("Starting server on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
