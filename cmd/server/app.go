package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskrail/taskrail-api/internal/config"
	"github.com/taskrail/taskrail-api/internal/password"
	"github.com/taskrail/taskrail-api/internal/platform/postgres"
	"github.com/taskrail/taskrail-api/internal/store"
	"github.com/taskrail/taskrail-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore   store.UserStore
	taskStore   store.TaskStore
	reportStore store.ReportStore

	// Password pipeline
	passwordController *password.Controller
	passwordHasher     *password.Hasher

	// Background processing
	taskRunner *task.Runner
	simulator  *task.Simulator
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization. The task runner is started here; callers must arrange for
// cleanup to run on shutdown.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)
	app.reportStore = postgres.NewReportStore(db, logger)

	// Initialize the password pipeline from configuration. The controller
	// resolves its validators lazily, so a bad validator name surfaces on
	// first use; the hasher fails fast on unknown scheme identifiers.
	app.passwordController = password.NewController(cfg.Password.Validators)

	hasher, err := password.NewHasher(cfg.Password.HashSchemes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	app.passwordHasher = hasher
	logger.Info("Password pipeline initialized",
		"validators", len(cfg.Password.Validators),
		"hash_schemes", cfg.Password.HashSchemes)

	// Initialize and start the task runner
	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	// Initialize the waiting-time simulator
	app.simulator = task.NewSimulator(logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run applies pending database migrations and then serves HTTP until
// shutdown. It returns an error if migrations or the server fail.
func (app *application) Run(ctx context.Context) error {
	if err := postgres.RunMigrations(ctx, app.db, app.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
