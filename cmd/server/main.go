package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"authapi/backend/internal/config"
	"authapi/backend/internal/httpserver"
	"authapi/backend/internal/infrastructure/hashing"
	"authapi/backend/internal/infrastructure/postgres"
	"authapi/backend/internal/infrastructure/token"
	accountusecase "authapi/backend/internal/usecase/account"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokens := token.NewGenerator()
	// Refuse to start without a working random source; no account may ever
	// be issued a predictable token.
	if _, err := tokens.Generate(); err != nil {
		log.Fatalf("secure random source unavailable: %v", err)
	}

	accountService := accountusecase.NewService(
		postgres.NewAccountRepository(db.Pool),
		hashing.NewBcryptHasher(),
		tokens,
	)

	server := httpserver.NewServer(cfg, accountService)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
