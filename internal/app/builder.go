package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"granteval-go/internal/auth"
	"granteval-go/internal/config"
	"granteval-go/internal/db"
	dbsqlc "granteval-go/internal/db/sqlc"
	"granteval-go/internal/events"
	"granteval-go/internal/httpapi"
	"granteval-go/internal/logger"
	"granteval-go/internal/providers/manifund"
	"granteval-go/internal/repositories"
	"granteval-go/internal/repositories/memory"
	sqlcrepo "granteval-go/internal/repositories/sqlc"
	"granteval-go/internal/scheduler"
	"granteval-go/internal/services/catalog"
	"granteval-go/internal/services/evaluation"
	"granteval-go/internal/services/syncing"
	"granteval-go/internal/telegram"
)

type Builder struct {
	cfg          *config.Config
	basePath     string
	ensureSchema bool

	logger      *zap.Logger
	pool        *pgxpool.Pool
	projects    repositories.ProjectRepository
	evaluations repositories.EvaluationRepository
	source      syncing.CatalogSource
	notifier    syncing.Notifier
	client      *http.Client

	scheduler *scheduler.Scheduler
	server    *http.Server
}

type BuilderOption func(*Builder)

func NewBuilder(cfg *config.Config, options ...BuilderOption) *Builder {
	builder := &Builder{
		cfg:          cfg,
		ensureSchema: true,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithBasePath(basePath string) BuilderOption {
	return func(b *Builder) {
		b.basePath = basePath
	}
}

func WithEnsureSchema(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.ensureSchema = enabled
	}
}

func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithDBPool(pool *pgxpool.Pool) BuilderOption {
	return func(b *Builder) {
		b.pool = pool
	}
}

// WithRepositories bypasses the configured storage driver.
func WithRepositories(projects repositories.ProjectRepository, evaluations repositories.EvaluationRepository) BuilderOption {
	return func(b *Builder) {
		b.projects = projects
		b.evaluations = evaluations
	}
}

func WithCatalogSource(source syncing.CatalogSource) BuilderOption {
	return func(b *Builder) {
		b.source = source
	}
}

func WithNotifier(notifier syncing.Notifier) BuilderOption {
	return func(b *Builder) {
		b.notifier = notifier
	}
}

func WithHTTPClient(client *http.Client) BuilderOption {
	return func(b *Builder) {
		b.client = client
	}
}

func WithScheduler(scheduler *scheduler.Scheduler) BuilderOption {
	return func(b *Builder) {
		b.scheduler = scheduler
	}
}

func WithHTTPServer(server *http.Server) BuilderOption {
	return func(b *Builder) {
		b.server = server
	}
}

func (b *Builder) Build(ctx context.Context) (*App, error) {
	if b.cfg == nil {
		return nil, errors.New("config is required")
	}

	app := &App{Config: b.cfg}

	if b.logger == nil {
		log, err := logger.New(b.cfg.LogLevel, b.cfg.Development())
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		b.logger = log
		app.ownsLogger = true
	}
	app.Logger = b.logger

	if b.projects == nil || b.evaluations == nil {
		if err := b.buildStorage(ctx, app); err != nil {
			app.release()
			return nil, err
		}
	}
	app.Projects = b.projects
	app.Evaluations = b.evaluations

	if b.notifier == nil && b.cfg.TelegramEnabled() {
		sender := telegram.NewSender(b.cfg.TelegramToken, b.cfg.TelegramChat, b.cfg.TelegramThreadID, b.logger.Named("telegram"))
		app.telegram = sender
		b.notifier = sender
	}
	app.Notifier = b.notifier

	if b.client == nil {
		b.client = &http.Client{Timeout: b.cfg.CatalogTimeout}
	}

	if b.source == nil {
		options := []manifund.Option{}
		if b.cfg.CatalogURL != "" {
			options = append(options, manifund.WithURL(b.cfg.CatalogURL))
		}
		b.source = manifund.NewClient(b.client, b.logger.Named("manifund"), options...)
	}
	app.Source = b.source

	app.Events = events.NewHub()
	app.Catalog = catalog.NewService(app.Projects)
	app.Sync = syncing.NewService(app.Projects, app.Source, app.Notifier, app.Events, b.logger.Named("sync"))
	app.Evaluation = evaluation.NewService(app.Evaluations, app.Events, b.logger.Named("evaluation"))

	if b.scheduler == nil {
		b.scheduler = scheduler.New(b.cfg.SyncCron, app.Sync, b.logger.Named("scheduler"))
	}
	app.Scheduler = b.scheduler

	if b.server == nil {
		handler := httpapi.NewHandler(
			app.Catalog,
			app.Sync,
			app.Evaluation,
			app.Events,
			auth.NewTokens(b.cfg.JWTSecret),
			b.logger.Named("http"),
		)
		b.server = &http.Server{
			Addr:              ":" + b.cfg.HTTPPort,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	app.Server = b.server
	// open event streams only end when their subscription does
	app.Server.RegisterOnShutdown(app.Events.Close)

	return app, nil
}

func (b *Builder) buildStorage(ctx context.Context, app *App) error {
	switch b.cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewDB()
		b.projects = memory.NewProjectRepository(store)
		b.evaluations = memory.NewEvaluationRepository(store)
		b.logger.Warn("using in-memory storage; data is lost on restart")
		return nil
	case config.StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", b.cfg.StorageDriver)
	}

	if b.pool == nil {
		pool, err := db.NewPool(ctx, b.cfg.PostgresDSN(), b.logger)
		if err != nil {
			return err
		}
		b.pool = pool
		app.ownsPool = true
	}
	app.Pool = b.pool

	if b.ensureSchema {
		basePath := b.basePath
		if basePath == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			basePath = wd
		}
		path, err := filepath.Abs(basePath)
		if err != nil {
			return err
		}
		if err := db.EnsureSchema(ctx, b.pool, path); err != nil {
			return err
		}
	}

	queries := dbsqlc.New(b.pool)
	b.projects = sqlcrepo.NewProjectRepository(queries)
	b.evaluations = sqlcrepo.NewEvaluationRepository(queries)
	return nil
}
