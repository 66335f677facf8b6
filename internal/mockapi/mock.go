// Package mockapi fabricates backend responses in-process so the client can
// run without a reachable backend.
package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/metrics"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// DefaultLatency is the artificial delay before a mocked response.
const DefaultLatency = 300 * time.Millisecond

const scrapItemPrefix = "/scrap/"

// handlerFunc produces the JSON payload for a matched route.
type handlerFunc func(ctx context.Context, req *gateway.Request) (any, error)

// MockBackend answers a fixed set of routes itself and hands every other
// request to a fallback backend.
type MockBackend struct {
	fallback gateway.BackendClient
	kv       storage.KV
	latency  time.Duration
	log      *slog.Logger
	houses   []domain.HouseDTO
	routes   map[string]handlerFunc
}

// Option configures the MockBackend.
type Option func(*MockBackend)

// WithLatency sets the artificial delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(m *MockBackend) {
		m.latency = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *MockBackend) {
		m.log = l
	}
}

// New creates a MockBackend. kv is read to answer scrap-list queries from
// the same cache real toggles write to. fallback may be nil, in which case
// unmatched routes fail with a NetworkError.
func New(fallback gateway.BackendClient, kv storage.KV, opts ...Option) (*MockBackend, error) {
	houses, err := Houses()
	if err != nil {
		return nil, err
	}

	m := &MockBackend{
		fallback: fallback,
		kv:       kv,
		latency:  DefaultLatency,
		log:      slog.Default(),
		houses:   houses,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.routes = map[string]handlerFunc{
		routeKey(http.MethodPost, "/auth/login"):    m.login,
		routeKey(http.MethodPost, "/auth/register"): m.register,
		routeKey(http.MethodPost, "/auth/signup"):   m.register,
		routeKey(http.MethodGet, "/user/profile"):   m.profile,
		routeKey(http.MethodGet, "/scrap"):          m.listScraps,
		routeKey(http.MethodGet, "/estate"):         m.listHouses,
	}

	return m, nil
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Send implements gateway.BackendClient.
func (m *MockBackend) Send(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	route, handler := m.match(req)
	if handler == nil {
		if m.fallback == nil {
			return nil, &gateway.NetworkError{
				Method: req.Method,
				URL:    req.Path,
				Err:    fmt.Errorf("no mock route and no real backend configured"),
			}
		}
		return m.fallback.Send(ctx, req)
	}

	metrics.MockInterceptionsTotal.WithLabelValues(route).Inc()
	m.log.Debug("mock intercepted request", "method", req.Method, "path", req.Path)

	if err := m.sleep(ctx); err != nil {
		return nil, &gateway.NetworkError{Method: req.Method, URL: req.Path, Err: err}
	}

	payload, err := handler(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mock %s %s: %w", req.Method, req.Path, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding mock response: %w", err)
	}

	return &gateway.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
		Mocked:     true,
	}, nil
}

// match returns the route label and handler for req, or a nil handler.
func (m *MockBackend) match(req *gateway.Request) (string, handlerFunc) {
	key := routeKey(req.Method, req.Path)
	if h, ok := m.routes[key]; ok {
		return req.Path, h
	}
	if strings.HasPrefix(req.Path, scrapItemPrefix) && len(req.Path) > len(scrapItemPrefix) {
		switch req.Method {
		case http.MethodPost, http.MethodDelete:
			return scrapItemPrefix + "{id}", m.setScrap
		}
	}
	return "", nil
}

func (m *MockBackend) sleep(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (m *MockBackend) login(_ context.Context, req *gateway.Request) (any, error) {
	user := MockUser
	var creds domain.Credentials
	if err := json.Unmarshal(req.Body, &creds); err == nil && creds.Email != "" {
		user.Email = creds.Email
	}
	return loginResponse{Token: "mock-" + uuid.NewString(), User: user}, nil
}

func (m *MockBackend) register(context.Context, *gateway.Request) (any, error) {
	return map[string]bool{"ok": true}, nil
}

func (m *MockBackend) profile(ctx context.Context, _ *gateway.Request) (any, error) {
	var user domain.User
	if ok, err := storage.GetJSON(ctx, m.kv, storage.KeyUser, &user); err == nil && ok {
		return user, nil
	}
	return MockUser, nil
}

// listScraps answers from the durable per-user cache so mocked lists stay
// consistent with toggles made earlier.
func (m *MockBackend) listScraps(ctx context.Context, _ *gateway.Request) (any, error) {
	var user domain.User
	ok, err := storage.GetJSON(ctx, m.kv, storage.KeyUser, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ListingID{}, nil
	}

	key, ok := storage.ScrapsKey(user.ID.String())
	if !ok {
		return []domain.ListingID{}, nil
	}

	var ids []domain.ListingID
	found, err := storage.GetJSON(ctx, m.kv, key, &ids)
	if err != nil {
		return nil, err
	}
	if !found {
		if user.ID == MockUser.ID {
			return MockScraps, nil
		}
		return []domain.ListingID{}, nil
	}
	if ids == nil {
		ids = []domain.ListingID{}
	}
	return ids, nil
}

type scrapResult struct {
	ID       domain.ListingID `json:"id"`
	Scrapped bool             `json:"scrapped"`
}

func (m *MockBackend) setScrap(_ context.Context, req *gateway.Request) (any, error) {
	id := domain.ListingID(strings.TrimPrefix(req.Path, scrapItemPrefix))
	return scrapResult{ID: id, Scrapped: req.Method == http.MethodPost}, nil
}

func (m *MockBackend) listHouses(context.Context, *gateway.Request) (any, error) {
	return m.houses, nil
}
