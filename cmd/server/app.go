package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-lite/internal/config"
	"github.com/phrazzld/scry-lite/internal/export"
	"github.com/phrazzld/scry-lite/internal/extract"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/platform/postgres"
	"github.com/phrazzld/scry-lite/internal/redact"
	"github.com/phrazzld/scry-lite/internal/service"
	"github.com/phrazzld/scry-lite/internal/task"
	"github.com/phrazzld/scry-lite/internal/telegram"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	packService service.PackService
	webhook     *telegram.Webhook
	taskRunner  *task.Runner
}

// newApplication wires stores, services and the Telegram transport. The
// extraction cache is enabled only when a Redis URL is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	packStore := postgres.NewPostgresPackStore(db, logger)
	repo := service.NewPackRepositoryAdapter(packStore, db)
	generator := litepack.NewGenerator(litepack.WithLogger(logger))

	var cache extract.Cache
	if cfg.Extract.RedisURL != "" {
		client, err := extract.NewRedisClient(ctx, cfg.Extract.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = client
		cache = extract.NewRedisCache(client, extract.DefaultCachePrefix)
		logger.Info("extraction cache enabled", "ttl_minutes", cfg.Extract.CacheTTLMinutes)
	}

	extractor := extract.New(extract.Config{
		MaxChars:  cfg.Extract.MaxChars,
		Timeout:   time.Duration(cfg.Extract.TimeoutSeconds) * time.Second,
		UserAgent: cfg.Extract.UserAgent,
		CacheTTL:  time.Duration(cfg.Extract.CacheTTLMinutes) * time.Minute,
	}, cache, logger)

	exporter := export.NewPDFRenderer(exportConfig(cfg), logger)

	var err error
	app.packService, err = service.NewPackService(repo, generator, extractor, exporter, service.PackServiceConfig{
		MinInputLength: cfg.Pack.MinInputLength,
		RetentionCount: cfg.Pack.RetentionCount,
		DefaultTitle:   cfg.Pack.DefaultTitle,
	}, logger)
	if err != nil {
		if app.redis != nil {
			_ = app.redis.Close()
		}
		return nil, fmt.Errorf("failed to create pack service: %w", err)
	}

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Telegram.WorkerCount,
		QueueSize:   cfg.Telegram.QueueSize,
	}, logger)
	app.taskRunner.SetErrorHandler(func(t task.Task, err error) {
		logger.Error("background task failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", redact.Secret(err.Error(), cfg.Telegram.BotToken))
	})
	app.taskRunner.Start()

	client := telegram.NewClient(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, logger)
	bot := telegram.NewBot(telegram.BotConfig{
		AppURL:           cfg.Telegram.AppURL,
		MaxMessageLength: cfg.Telegram.MaxMessageLength,
		MinInputLength:   cfg.Pack.MinInputLength,
	}, generator)
	app.webhook = telegram.NewWebhook(bot, client, app.taskRunner, logger)

	logger.Info("application initialized")
	return app, nil
}

// exportConfig falls back to the bot's app URL for the document footer.
func exportConfig(cfg *config.Config) export.Config {
	appURL := cfg.Export.AppURL
	if appURL == "" {
		appURL = cfg.Telegram.AppURL
	}
	return export.Config{FontDir: cfg.Export.FontDir, AppURL: appURL}
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains pending replies and closes connections.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout())
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Error("task runner did not drain", "error", err)
		}
		cancel()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

func (app *application) shutdownTimeout() time.Duration {
	if app.config == nil || app.config.Server.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}
