package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/assistant"
	"github.com/frahmantamala/financeflow/internal/auth"
	"github.com/frahmantamala/financeflow/internal/budget"
	"github.com/frahmantamala/financeflow/internal/category"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/earning"
	"github.com/frahmantamala/financeflow/internal/expense"
	"github.com/frahmantamala/financeflow/internal/persistence"
	"github.com/frahmantamala/financeflow/internal/report"
	"github.com/frahmantamala/financeflow/internal/snapshot"
	"github.com/frahmantamala/financeflow/internal/store"
	"github.com/frahmantamala/financeflow/internal/transport/rest"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Store  *store.Store
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if sqlDB, dbErr := deps.DB.DB(); dbErr == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := persistence.Open(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	if err := db.AutoMigrate(&persistence.Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate document store: %w", err)
	}

	bus := events.NewEventBus(lg)
	st := store.New(bus, lg)

	// Read persisted state before the mirror subscribes, so hydration
	// never writes back what it just read.
	mirror := persistence.NewMirror(persistence.NewDocumentStore(db), lg)
	mirror.Hydrate(st)
	mirror.Register(bus)

	return &Dependencies{
		Config: config,
		DB:     db,
		Store:  st,
		Router: chi.NewRouter(),
		Logger: lg,
	}, nil
}

func setupRoutes(deps *Dependencies) error {
	authService := auth.NewService(deps.Config.Auth)
	authHandler := auth.NewHandler(authService)

	var assistantClient assistant.ClientAPI
	if deps.Config.Assistant.Enabled() {
		assistantClient = assistant.NewClient(deps.Config.Assistant)
	}

	handlers := rest.Handlers{
		Auth:      authHandler,
		State:     rest.NewStateHandler(deps.Store),
		Expense:   expense.NewHandler(deps.Store),
		Earning:   earning.NewHandler(deps.Store),
		Category:  category.NewHandler(deps.Store),
		Budget:    budget.NewHandler(deps.Store),
		Report:    report.NewHandler(deps.Store),
		Snapshot:  snapshot.NewHandler(deps.Store),
		Assistant: assistant.NewHandler(assistantClient, deps.Store),
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to unwrap sql db: %w", err)
	}

	driver := deps.Config.Storage.Driver
	if driver == "" {
		driver = "sqlite"
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, driver, handlers, deps.Config.Server.AllowedOrigins, deps.Logger)
	return nil
}
