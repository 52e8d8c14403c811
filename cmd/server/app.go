package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ziwei-api/internal/config"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/events"
	"github.com/phrazzld/ziwei-api/internal/generation"
	"github.com/phrazzld/ziwei-api/internal/platform/gemini"
	"github.com/phrazzld/ziwei-api/internal/platform/postgres"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/phrazzld/ziwei-api/internal/service/auth"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/phrazzld/ziwei-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	profileStore store.ProfileStore
	readingStore store.ReadingStore
	taskStore    task.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	chartEngine      ziwei.Service
	userService      service.UserService
	profileService   service.ProfileService
	chartService     service.ChartService
	readingService   service.ReadingService

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication creates the Gemini reading generator and assembles the
// application around it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	generator, err := gemini.NewGeminiGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	return assembleApplication(cfg, logger, db, generator)
}

// assembleApplication wires stores, services, the event emitter and the
// task runner. Nothing is started.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	generator generation.Generator,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		generator: generator,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.readingStore = postgres.NewPostgresReadingStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.chartEngine = ziwei.NewDefaultService()
	app.userService = service.NewUserService(app.userStore, db, logger)
	app.profileService = service.NewProfileService(app.profileStore, db, logger)
	app.chartService = service.NewChartService(app.chartEngine, app.profileStore, cfg.Chart.MaxParallel, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.readingService, err = service.NewReadingService(
		app.readingStore,
		app.profileStore,
		db,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}

	app.taskRunner = task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:    cfg.Task.QueueSize,
		WorkerCount:  cfg.Task.WorkerCount,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)

	factory := task.NewReadingGenerationTaskFactory(app.readingService, app.chartService, generator, logger)
	app.taskRunner.RegisterRestorer(task.TaskTypeReadingGeneration, factory.Restore)
	app.eventEmitter.Subscribe(task.TaskTypeReadingGeneration,
		task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))

	logger.Info("application initialized")
	return app, nil
}

// Run starts the task runner and serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.taskRunner.Start(); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", redact.Error(err))
		}
	}

	app.logger.Info("application shutdown completed")
}
