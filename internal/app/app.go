// Package app constructs the client's services from configuration and
// owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/bokdeok/internal/config"
	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/listings"
	"github.com/donaldgifford/bokdeok/internal/mockapi"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/scrap"
	"github.com/donaldgifford/bokdeok/internal/session"
	"github.com/donaldgifford/bokdeok/internal/storage"
)

// App is the wired client.
type App struct {
	Config   *config.Config
	KV       storage.Closer
	Gateway  *gateway.Gateway
	Session  *session.Store
	Scraps   *scrap.Store
	Listings *listings.Service

	log *slog.Logger
}

type options struct {
	log        *slog.Logger
	notifier   notify.Notifier
	kv         storage.KV
	backend    gateway.BackendClient
	logoutHook func()
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger shared by every service.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithKV uses kv instead of opening the configured storage.
func WithKV(kv storage.KV) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithBackend replaces the HTTP backend that real requests, and mock
// fall-through requests, are sent to.
func WithBackend(b gateway.BackendClient) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogoutHook sets a function run after every logout.
func WithLogoutHook(fn func()) Option {
	return func(o *options) {
		o.logoutHook = fn
	}
}

// New builds the services described by cfg. Nothing is read from storage
// until Init.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.notifier == nil {
		o.notifier = notify.NewLogNotifier(o.log)
	}

	var kv storage.Closer
	if o.kv != nil {
		kv = storage.NopCloser(o.kv)
	} else {
		var err error
		kv, err = storage.Open(ctx, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
		}
	}

	backend := o.backend
	if backend == nil {
		backend = gateway.NewRealBackend(cfg.API.Endpoint(), gateway.WithTimeout(cfg.API.Timeout))
	}
	if cfg.Backend.Mode == config.BackendMock {
		mock, err := mockapi.New(backend, kv,
			mockapi.WithLatency(cfg.Backend.MockLatency),
			mockapi.WithLogger(o.log),
		)
		if err != nil {
			_ = kv.Close()
			return nil, err
		}
		backend = mock
		o.log.Debug("using mock backend", "latency", cfg.Backend.MockLatency)
	}

	gw := gateway.New(backend, kv,
		gateway.WithLogger(o.log),
		gateway.WithRateLimit(cfg.API.RateLimit.PerSecond, cfg.API.RateLimit.Burst),
	)

	sess := session.New(gw, kv,
		session.WithLogger(o.log),
		session.WithNotifier(o.notifier),
		session.WithRegisterPath(cfg.API.RegisterPath),
		session.WithLogoutHook(o.logoutHook),
	)
	scraps := scrap.New(gw, kv, sess,
		scrap.WithLogger(o.log),
		scrap.WithNotifier(o.notifier),
	)
	sess.SetScrapSyncer(scraps)
	gw.OnSessionExpired(sess.ForceLogout)

	return &App{
		Config:   cfg,
		KV:       kv,
		Gateway:  gw,
		Session:  sess,
		Scraps:   scraps,
		Listings: listings.New(gw),
		log:      o.log,
	}, nil
}

// Init restores the saved session and, when signed in, reconciles
// bookmarks.
func (a *App) Init(ctx context.Context) error {
	if err := a.Session.Init(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if !a.Session.IsAuthenticated() {
		return nil
	}
	if err := a.Scraps.Load(ctx); err != nil {
		return fmt.Errorf("loading scraps: %w", err)
	}
	return nil
}

// Reset returns every service to its anonymous in-memory state without
// touching storage.
func (a *App) Reset() {
	a.Session.Reset()
	a.Scraps.Clear()
	a.Gateway.ClearAuthToken()
}

// Logger returns the logger shared by the services.
func (a *App) Logger() *slog.Logger {
	return a.log
}

// Close releases storage.
func (a *App) Close() error {
	return a.KV.Close()
}
