// Package main initializes and starts the task tracker HTTP server,
// setting up configuration, logging, the database connection, repositories,
// services, handlers, and graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/config"
	"github.com/atinyakov/TaskTracker/internal/db"
	"github.com/atinyakov/TaskTracker/internal/logger"
	"github.com/atinyakov/TaskTracker/internal/repository"
	"github.com/atinyakov/TaskTracker/internal/server/handler/http"
	"github.com/atinyakov/TaskTracker/internal/service"
	"github.com/atinyakov/TaskTracker/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load a local .env file if present, then parse flags and environment.
	_ = godotenv.Load()
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// The signing secret must come from process configuration. Starting
	// without one is a fatal configuration error, never a fallback default.
	tokenManager, err := token.NewManager(
		options.JWTSecret,
		time.Duration(options.TokenTTLHours)*time.Hour,
	)
	if err != nil {
		zapLogger.Fatal("JWT_SECRET is not set", zap.Error(err))
	}

	// Open the embedded database once; it is closed on shutdown.
	sqliteDB, err := db.InitSQLite(options.DatabasePath)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = sqliteDB.Close() }()

	// Initialize repositories for users and tasks.
	userRepo := repository.NewSQLiteUserRepository(sqliteDB)
	taskRepo := repository.NewSQLiteTaskRepository(sqliteDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokenManager)
	taskService := service.NewTaskService(taskRepo)

	// Create HTTP handlers for auth and task endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	tasksHandler := &http.TasksHandler{TaskService: taskService, Log: zapLogger}

	var origins []string
	if options.AllowedOrigins != "" {
		origins = strings.Split(options.AllowedOrigins, ",")
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, tasksHandler, tokenManager, zapLogger, origins)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		zapLogger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown failed", zap.Error(err))
	}
}
