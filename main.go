package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/config"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/database"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/handlers"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/identity"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/llm"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/logging"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/middleware"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/realtime"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("ai_model", cfg.AI.Model))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	suggestionRepo := repositories.NewSuggestionRepository(db)

	// Live-update channel
	hub := realtime.NewHub(logger)

	// External collaborators
	var identityProvider services.IdentityProvider
	if cfg.Identity.BaseURL != "" {
		identityProvider = identity.NewClient(cfg.Identity.BaseURL, logger)
	}

	llmClient, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Services
	notificationService := services.NewNotificationService(notificationRepo, logger)
	progressService := services.NewProgressService(taskRepo, projectRepo, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, notificationService, progressService, logger)
	userService := services.NewUserService(userRepo, taskRepo, projectRepo, notificationService, identityProvider, hub, logger)
	projectService := services.NewProjectService(projectRepo, taskRepo, notificationService, hub, logger)
	suggestionService := services.NewSuggestionService(llmClient, suggestionRepo, logger)

	// Handlers
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, hub, logger).RegisterRoutes(mux)
	handlers.NewUsersHandler(userService, logger).RegisterRoutes(mux)
	handlers.NewProjectsHandler(projectService, logger).RegisterRoutes(mux)
	handlers.NewTasksHandler(taskService, logger).RegisterRoutes(mux)
	handlers.NewNotificationsHandler(notificationService, logger).RegisterRoutes(mux)
	handlers.NewSuggestionsHandler(suggestionService, logger).RegisterRoutes(mux)
	hub.RegisterRoutes(mux)

	server := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: middleware.RequestLogger(logger)(mux),
	}

	go func() {
		logger.Info("Starting taskflow server",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
