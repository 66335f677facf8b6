package app_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/app"
	"github.com/donaldgifford/bokdeok/internal/config"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func mockConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Finalize(&config.Config{
		Backend: config.BackendConfig{Mode: config.BackendMock, MockLatency: time.Millisecond},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	})
	require.NoError(t, err)
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApp_MockSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	cfg := mockConfig(t)

	a, err := app.New(ctx, cfg, app.WithKV(kv), app.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, a.Init(ctx))
	assert.False(t, a.Session.IsAuthenticated())

	user, err := a.Session.Login(ctx, domain.Credentials{Email: "test@bokdeok.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("1"), user.ID)
	assert.Equal(t, []domain.ListingID{"1", "3"}, a.Scraps.IDs())

	ok, err := a.Scraps.Toggle(ctx, "2")
	require.NoError(t, err)
	assert.True(t, ok)

	estates, err := a.Listings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, estates, 4)
	require.NoError(t, a.Close())

	// A second process sharing the same storage resumes the session.
	b, err := app.New(ctx, cfg, app.WithKV(kv), app.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, b.Init(ctx))

	assert.True(t, b.Session.IsAuthenticated())
	assert.Equal(t, []domain.ListingID{"1", "2", "3"}, b.Scraps.IDs())

	b.Session.Logout(ctx)
	assert.False(t, b.Session.IsAuthenticated())
	assert.Zero(t, b.Scraps.Count())

	_, found, err := kv.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, found)
	assert.JSONEq(t, `["1","2","3"]`, kv.Snapshot()["scraps_1"])
}

func TestApp_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	a, err := app.New(ctx, mockConfig(t), app.WithKV(kv), app.WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = a.Session.Login(ctx, domain.Credentials{Email: "test@bokdeok.com"})
	require.NoError(t, err)
	require.Positive(t, a.Scraps.Count())

	a.Reset()

	assert.False(t, a.Session.IsAuthenticated())
	assert.Zero(t, a.Scraps.Count())
	_, found, err := kv.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, a.Init(ctx))
	assert.True(t, a.Session.IsAuthenticated())
}

func TestApp_SessionExpiryNotifies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	cfg, err := config.Finalize(&config.Config{
		API:     config.APIConfig{BaseURL: srv.URL},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	})
	require.NoError(t, err)

	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyAccessToken, "stale"))
	require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyUser, domain.User{ID: "1"}))

	var banner bytes.Buffer
	a, err := app.New(ctx, cfg,
		app.WithKV(kv),
		app.WithLogger(quietLogger()),
		app.WithNotifier(notify.NewBannerNotifier(&banner)),
	)
	require.NoError(t, err)

	require.NoError(t, a.Init(ctx))

	assert.False(t, a.Session.IsAuthenticated())
	assert.Equal(t, "[!] "+notify.MsgSessionExpired+"\n", banner.String())
}

func TestApp_OpensConfiguredStorage(t *testing.T) {
	t.Parallel()

	cfg, err := config.Finalize(&config.Config{
		Storage: config.StorageConfig{Driver: config.StorageFile, Path: t.TempDir() + "/state.json"},
	})
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg, app.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, a.Close())
}
