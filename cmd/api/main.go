package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dfreire/financas/internal/auth"
	"github.com/dfreire/financas/internal/config"
	"github.com/dfreire/financas/internal/database"
	"github.com/dfreire/financas/internal/entry"
	entryStore "github.com/dfreire/financas/internal/entry/store"
	financasHttp "github.com/dfreire/financas/internal/http"
	entryHandler "github.com/dfreire/financas/internal/http/entry"
	authMiddleware "github.com/dfreire/financas/internal/http/middleware"
	userHandler "github.com/dfreire/financas/internal/http/user"
	"github.com/dfreire/financas/internal/user"
	userStore "github.com/dfreire/financas/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Server.Timeout)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		tokenService = auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpirationMinutes)
		userService  = user.NewService(userStore.New(db), auth.NewPasswordHasher())
		entryService = entry.NewService(entryStore.New(db))
	)

	var (
		userH  = userHandler.NewHandler(userService, entryService, tokenService)
		entryH = entryHandler.NewHandler(entryService, userService)
		authMW = authMiddleware.NewAuth(tokenService, userService, financasHttp.UnauthenticatedRoutes)
	)

	router := financasHttp.New(userH, entryH, authMW, cfg.CORS.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
