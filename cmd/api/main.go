package main

import (
	"context"
	"errors"
	"net/http"
	"notekeeper/cmd/internal/config"
	"notekeeper/cmd/internal/domain/policy"
	"notekeeper/cmd/internal/domain/sqlite"
	"notekeeper/cmd/internal/domain/sqlite/repository"
	"notekeeper/cmd/internal/http/handler"
	"notekeeper/cmd/internal/http/middleware"
	"notekeeper/cmd/internal/http/server"
	"notekeeper/cmd/internal/infrastructure/credentials"
	"notekeeper/cmd/internal/service"
	"notekeeper/cmd/internal/utils/validators"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	tokens, err := credentials.NewTokenSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("failed to init token signer: %v", err)
	}
	hasher := credentials.NewBcryptHasher(cfg.BcryptCost)
	validate := validators.New()

	// Repos
	noteRepo := repository.NewNoteRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	noteService := service.NewNoteService(noteRepo, policy.NewNotePolicy(), validate)
	categoryService := service.NewCategoryService(categoryRepo, validate)
	userService := service.NewUserService(userRepo, validate, hasher, tokens)

	e := server.New(&server.Options{
		BodyLimit:  cfg.BodyLimit,
		Notes:      handler.NewNoteDefault(noteService),
		Users:      handler.NewUserDefault(userService),
		Categories: handler.NewCategoryDefault(categoryService),
		Auth: &middleware.AuthMiddlewareConfig{
			UserRepo: userRepo,
			Tokens:   tokens,
		},
	})

	go func() {
		log.Infof("listening on %s", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("failed to get database handle: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
}
