package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"granteval-go/internal/config"
	"granteval-go/internal/events"
	"granteval-go/internal/repositories"
	"granteval-go/internal/scheduler"
	"granteval-go/internal/services/catalog"
	"granteval-go/internal/services/evaluation"
	"granteval-go/internal/services/syncing"
	"granteval-go/internal/telegram"
)

type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Pool        *pgxpool.Pool
	Projects    repositories.ProjectRepository
	Evaluations repositories.EvaluationRepository
	Source      syncing.CatalogSource
	Notifier    syncing.Notifier
	Events      *events.Hub
	Catalog     *catalog.Service
	Sync        *syncing.Service
	Evaluation  *evaluation.Service
	Scheduler   *scheduler.Scheduler
	Server      *http.Server

	telegram   *telegram.Sender
	ownsPool   bool
	ownsLogger bool
	bootstrap  chan struct{}
}

func (a *App) Start() error {
	if err := a.Scheduler.Start(); err != nil {
		return err
	}

	a.bootstrap = make(chan struct{})
	go func() {
		defer close(a.bootstrap)
		a.bootstrapSync(context.Background())
	}()

	go func() {
		a.Logger.Info("HTTP server listening", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Fatal("http server error", zap.Error(err))
		}
	}()

	return nil
}

// bootstrapSync fills an empty store once at start-up so the first
// reviewer does not land on an empty catalog.
func (a *App) bootstrapSync(ctx context.Context) {
	if !a.Config.SyncOnStart {
		return
	}
	empty, err := a.Catalog.IsEmpty(ctx)
	if err != nil {
		a.Logger.Error("check catalog before bootstrap sync", zap.Error(err))
		return
	}
	if !empty {
		return
	}

	res := a.Sync.Sync(ctx)
	if !res.Success {
		a.Logger.Warn("bootstrap sync failed", zap.String("error", res.Error))
		return
	}
	a.Logger.Info("bootstrap sync finished", zap.Int("count", res.Count))
}

// WaitBootstrap blocks until the start-up sync has finished or ctx is done.
func (a *App) WaitBootstrap(ctx context.Context) error {
	if a.bootstrap == nil {
		return nil
	}
	select {
	case <-a.bootstrap:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.Scheduler.Stop()
	err := a.Server.Shutdown(ctx)
	a.release()
	return err
}

func (a *App) release() {
	if a.telegram != nil {
		a.telegram.Close()
	}
	if a.ownsPool && a.Pool != nil {
		a.Pool.Close()
	}
	if a.ownsLogger && a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
