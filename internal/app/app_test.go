package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"granteval-go/internal/config"
	"granteval-go/internal/events"
	"granteval-go/internal/model"
)

type fakeSource struct {
	projects []model.CatalogProject
	err      error
}

func (s fakeSource) Source() string { return "fake" }

func (s fakeSource) Fetch(context.Context) ([]model.CatalogProject, error) {
	return s.projects, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		StorageDriver: config.StorageMemory,
		SyncOnStart:   true,
		JWTSecret:     "secret",
		HTTPPort:      "0",
		LogLevel:      "error",
	}
}

func startApp(t *testing.T, cfg *config.Config, source fakeSource) *App {
	t.Helper()
	application, err := NewBuilder(cfg,
		WithLogger(zap.NewNop()),
		WithCatalogSource(source),
		WithHTTPServer(&http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}),
	).Build(context.Background())
	require.NoError(t, err)
	require.NoError(t, application.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})
	return application
}

func TestBootstrapSyncFillsEmptyStore(t *testing.T) {
	source := fakeSource{projects: []model.CatalogProject{{ExternalID: "a"}, {ExternalID: "b"}}}
	application := startApp(t, testConfig(), source)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.WaitBootstrap(ctx))

	projects, err := application.Catalog.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestBootstrapSyncSkippedWhenDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.SyncOnStart = false
	application := startApp(t, cfg, fakeSource{projects: []model.CatalogProject{{ExternalID: "a"}}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.WaitBootstrap(ctx))

	empty, err := application.Catalog.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestBootstrapSyncFailureKeepsAppRunning(t *testing.T) {
	application := startApp(t, testConfig(), fakeSource{err: errors.New("catalog down")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.WaitBootstrap(ctx))

	empty, err := application.Catalog.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestBuildRejectsUnknownStorageDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "sqlite"

	_, err := NewBuilder(cfg, WithLogger(zap.NewNop())).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := NewBuilder(nil).Build(context.Background())
	assert.Error(t, err)
}

func TestShutdownEndsEventSubscriptions(t *testing.T) {
	cfg := testConfig()
	cfg.SyncOnStart = false
	application := startApp(t, cfg, fakeSource{})

	changes, cancelSub := application.Events.Subscribe(events.Filter{})
	defer cancelSub()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))

	require.Eventually(t, func() bool {
		select {
		case _, open := <-changes:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
