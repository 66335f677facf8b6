package devserver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/app"
	"github.com/donaldgifford/bokdeok/internal/config"
	"github.com/donaldgifford/bokdeok/internal/devserver"
	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/notify/mocks"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startServer runs a seeded development server and returns a client
// configuration pointing at it.
func startServer(t *testing.T, profileLookup bool) (*devserver.State, *config.Config) {
	t.Helper()

	state := newState(t)
	_, err := state.Seed(context.Background(), form, "1", "3")
	require.NoError(t, err)

	srv := devserver.New(config.DevServerConfig{ProfileLookup: profileLookup}, state, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg, err := config.Finalize(&config.Config{
		API:     config.APIConfig{BaseURL: ts.URL},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	})
	require.NoError(t, err)
	return state, cfg
}

func TestServer_ClientRoundTrip(t *testing.T) {
	t.Parallel()

	for _, profileLookup := range []bool{false, true} {
		name := "token and user"
		if profileLookup {
			name = "token then profile"
		}

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			_, cfg := startServer(t, profileLookup)
			kv := storage.NewMemory()

			a, err := app.New(ctx, cfg, app.WithKV(kv), app.WithLogger(quietLogger()))
			require.NoError(t, err)
			require.NoError(t, a.Init(ctx))

			user, err := a.Session.Login(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
			require.NoError(t, err)
			assert.Equal(t, domain.UserID("1"), user.ID)
			assert.Equal(t, "복덕이유저", user.Nickname)
			assert.Equal(t, []domain.ListingID{"1", "3"}, a.Scraps.IDs())

			on, err := a.Scraps.Toggle(ctx, "4")
			require.NoError(t, err)
			assert.True(t, on)
			off, err := a.Scraps.Toggle(ctx, "1")
			require.NoError(t, err)
			assert.False(t, off)

			// A fresh client sees the server-side state.
			b, err := app.New(ctx, cfg, app.WithKV(storage.NewMemory()), app.WithLogger(quietLogger()))
			require.NoError(t, err)
			_, err = b.Session.Login(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
			require.NoError(t, err)
			assert.Equal(t, []domain.ListingID{"3", "4"}, b.Scraps.IDs())

			estates, err := b.Listings.List(ctx)
			require.NoError(t, err)
			assert.Len(t, estates, 4)
		})
	}
}

func TestServer_LoginFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, cfg := startServer(t, false)

	a, err := app.New(ctx, cfg, app.WithKV(storage.NewMemory()), app.WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = a.Session.Login(ctx, domain.Credentials{Email: form.Email, Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
	assert.False(t, a.Session.IsAuthenticated())

	err = a.Session.Register(ctx, form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already registered")

	require.NoError(t, a.Session.Register(ctx, domain.RegisterForm{
		Email: "new@bokdeok.com", Password: "secret", Nickname: "새유저",
	}))
}

func TestServer_RevokedTokenForcesLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	state, cfg := startServer(t, false)

	n := mocks.NewMockNotifier(t)
	n.EXPECT().Notify(mock.Anything, notify.Warn(notify.MsgSessionExpired)).Return().Once()

	a, err := app.New(ctx, cfg,
		app.WithKV(storage.NewMemory()),
		app.WithLogger(quietLogger()),
		app.WithNotifier(n),
	)
	require.NoError(t, err)

	_, err = a.Session.Login(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
	require.NoError(t, err)

	state.Revoke(a.Session.Token())

	_, err = a.Scraps.Toggle(ctx, "2")
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	assert.False(t, a.Session.IsAuthenticated())
	assert.Zero(t, a.Scraps.Count())
}

func TestServer_OperationalEndpoints(t *testing.T) {
	t.Parallel()

	srv := devserver.New(config.DevServerConfig{Host: "127.0.0.1", Port: 9090}, newState(t), quietLogger())
	assert.Equal(t, "127.0.0.1:9090", srv.Addr())

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/openapi.json", "/swagger/index.html"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	paths := srv.OpenAPI().Paths
	for _, p := range []string{"/api/v1/auth/login", "/api/v1/auth/signup", "/api/v1/user/profile", "/api/v1/scrap/{id}", "/api/v1/estate"} {
		assert.Contains(t, paths, p)
	}
}
