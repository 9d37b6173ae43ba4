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

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/core/events"
	"github.com/frahmantamala/trip-management/internal/docservice"
	"github.com/frahmantamala/trip-management/internal/document"
	documentpostgres "github.com/frahmantamala/trip-management/internal/document/postgres"
	"github.com/frahmantamala/trip-management/internal/notification"
	notificationpostgres "github.com/frahmantamala/trip-management/internal/notification/postgres"
	"github.com/frahmantamala/trip-management/internal/transport"
	"github.com/frahmantamala/trip-management/internal/transport/rest"
	"github.com/frahmantamala/trip-management/internal/trip"
	trippostgres "github.com/frahmantamala/trip-management/internal/trip/postgres"
	"github.com/frahmantamala/trip-management/internal/workflow"
	workflowpostgres "github.com/frahmantamala/trip-management/internal/workflow/postgres"
	"github.com/frahmantamala/trip-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	TripHandler     *trip.Handler
	WorkflowHandler *workflow.Handler
	DocumentHandler *document.Handler
	Logger          *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.TripHandler, deps.WorkflowHandler, deps.DocumentHandler, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// Repositories
	tripRepo := trippostgres.NewTripRepository(gormDB)
	queueRepo := workflowpostgres.NewQueueRepository(gormDB)
	documentRepo := documentpostgres.NewDocumentRepository(gormDB)
	subscriptionRepo := notificationpostgres.NewSubscriptionRepository(gormDB)

	// External document service: template rendering and mail delivery
	docClient := docservice.NewClient(config.DocService, log)

	// Notifications ride the in-process event bus
	bus := events.NewEventBus(log)
	dispatcher := notification.NewDispatcher(subscriptionRepo, docClient, config.Mail, log)
	dispatcher.RegisterHandlers(bus)
	notifier := notification.NewBusNotifier(bus, log)

	// Services
	documentService := document.NewService(documentRepo, docClient, document.NewPassthroughInflector(), config.Allowance, log)
	engine := workflow.NewEngine(queueRepo, log)
	workflowService := workflow.NewService(engine, queueRepo, tripRepo, documentService, notifier, log)
	tripService := trip.NewService(tripRepo, workflowService, log)

	// Handlers
	baseHandler := transport.NewBaseHandler(log)
	tripHandler := trip.NewHandler(baseHandler, tripService)
	workflowHandler := workflow.NewHandler(baseHandler, workflowService)
	documentHandler := document.NewHandler(baseHandler, documentService, tripService)

	return &Dependencies{
		Config:          config,
		Logger:          log,
		DB:              db,
		Router:          chi.NewRouter(),
		TripHandler:     tripHandler,
		WorkflowHandler: workflowHandler,
		DocumentHandler: documentHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
