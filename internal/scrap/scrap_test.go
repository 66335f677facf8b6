package scrap_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/notify"
	notifyMocks "github.com/donaldgifford/bokdeok/internal/notify/mocks"
	"github.com/donaldgifford/bokdeok/internal/scrap"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

type fakeIdentity struct {
	mu     sync.Mutex
	authed bool
	userID domain.UserID
}

func (f *fakeIdentity) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed
}

func (f *fakeIdentity) UserID() domain.UserID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.authed {
		return ""
	}
	return f.userID
}

func (f *fakeIdentity) set(authed bool, userID domain.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authed, f.userID = authed, userID
}

type call struct {
	method string
	path   string
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	get    func(path string) (*gateway.Envelope, error)
	mutate func(method, path string) error
}

func (f *fakeAPI) record(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, path: path})
}

func (f *fakeAPI) Get(_ context.Context, path string) (*gateway.Envelope, error) {
	f.record(http.MethodGet, path)
	if f.get == nil {
		return nil, &gateway.NetworkError{Method: http.MethodGet, URL: path, Err: errors.New("unreachable")}
	}
	return f.get(path)
}

func (f *fakeAPI) Post(_ context.Context, path string, _ any) (*gateway.Envelope, error) {
	return f.doMutate(http.MethodPost, path)
}

func (f *fakeAPI) Delete(_ context.Context, path string) (*gateway.Envelope, error) {
	return f.doMutate(http.MethodDelete, path)
}

func (f *fakeAPI) doMutate(method, path string) (*gateway.Envelope, error) {
	f.record(method, path)
	if f.mutate != nil {
		if err := f.mutate(method, path); err != nil {
			return nil, err
		}
	}
	return &gateway.Envelope{Success: true, Data: json.RawMessage("null")}, nil
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func okData(data string) func(string) (*gateway.Envelope, error) {
	return func(string) (*gateway.Envelope, error) {
		return &gateway.Envelope{Success: true, Data: json.RawMessage(data)}, nil
	}
}

func cached(t *testing.T, kv storage.KV, key string) string {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "expected %s to be cached", key)
	return v
}

func ids(vals ...string) []domain.ListingID {
	out := make([]domain.ListingID, 0, len(vals))
	for _, v := range vals {
		out = append(out, domain.ListingID(v))
	}
	return out
}

func newStore(t *testing.T, api scrap.API, identity scrap.Identity) (*scrap.Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return scrap.New(api, kv, identity, scrap.WithNotifier(notifyMocks.NewMockNotifier(t))), kv
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cache     string
		get       func(string) (*gateway.Envelope, error)
		wantIDs   []domain.ListingID
		wantCache string
	}{
		{
			name:      "remote replaces cache",
			cache:     `["1"]`,
			get:       okData(`["3","2"]`),
			wantIDs:   ids("2", "3"),
			wantCache: `["2","3"]`,
		},
		{
			name:      "remote numbers",
			get:       okData(`[1, 3]`),
			wantIDs:   ids("1", "3"),
			wantCache: `["1","3"]`,
		},
		{
			name:      "remote listing records",
			get:       okData(`[{"id":7,"title":"a"},{"aptSeq":"11110-123"},{"title":"no id"}]`),
			wantIDs:   ids("11110-123", "7"),
			wantCache: `["11110-123","7"]`,
		},
		{
			name:      "remote null is empty",
			cache:     `["1","3"]`,
			get:       okData(`null`),
			wantIDs:   ids(),
			wantCache: `[]`,
		},
		{
			name:      "remote empty list is valid",
			cache:     `["1"]`,
			get:       okData(`[]`),
			wantIDs:   ids(),
			wantCache: `[]`,
		},
		{
			name:      "remote not an array keeps cache",
			cache:     `["1","3"]`,
			get:       okData(`{"items":[]}`),
			wantIDs:   ids("1", "3"),
			wantCache: `["1","3"]`,
		},
		{
			name:      "remote unreachable keeps cache",
			cache:     `["1","3"]`,
			wantIDs:   ids("1", "3"),
			wantCache: `["1","3"]`,
		},
		{
			name:  "remote http error keeps cache",
			cache: `["4"]`,
			get: func(string) (*gateway.Envelope, error) {
				return nil, &gateway.HTTPError{StatusCode: http.StatusInternalServerError}
			},
			wantIDs:   ids("4"),
			wantCache: `["4"]`,
		},
		{
			name:    "corrupt cache treated as empty",
			cache:   `not json`,
			wantIDs: ids(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &fakeAPI{get: tt.get}
			s, kv := newStore(t, api, &fakeIdentity{authed: true, userID: "1"})
			ctx := context.Background()
			if tt.cache != "" {
				require.NoError(t, kv.Set(ctx, "scraps_1", tt.cache))
			}

			require.NoError(t, s.Load(ctx))

			assert.Equal(t, tt.wantIDs, s.IDs())
			assert.Equal(t, len(tt.wantIDs), s.Count())
			assert.Equal(t, []call{{http.MethodGet, "/scrap"}}, api.recorded())
			if tt.wantCache != "" {
				assert.JSONEq(t, tt.wantCache, cached(t, kv, "scraps_1"))
			}
		})
	}
}

func TestLoad_IdempotentWhenRemoteUnreachable(t *testing.T) {
	t.Parallel()

	s, kv := newStore(t, &fakeAPI{}, &fakeIdentity{authed: true, userID: "1"})
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "scraps_1", `["1","3"]`))

	require.NoError(t, s.Load(ctx))
	first := s.IDs()
	require.NoError(t, s.Load(ctx))

	assert.Equal(t, first, s.IDs())
	assert.Equal(t, ids("1", "3"), s.IDs())
	assert.JSONEq(t, `["1","3"]`, cached(t, kv, "scraps_1"))
}

func TestLoad_Anonymous(t *testing.T) {
	t.Parallel()

	identity := &fakeIdentity{authed: true, userID: "1"}
	api := &fakeAPI{get: okData(`["1"]`)}
	s, _ := newStore(t, api, identity)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.Equal(t, 1, s.Count())

	identity.set(false, "")
	require.NoError(t, s.Load(ctx))

	assert.Zero(t, s.Count())
	assert.Len(t, api.recorded(), 1, "anonymous load must not call the backend")
}

func TestLoad_MissingUserID(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{get: okData(`["1"]`)}
	s, kv := newStore(t, api, &fakeIdentity{authed: true})

	require.NoError(t, s.Load(context.Background()))

	assert.Empty(t, api.recorded())
	assert.Empty(t, kv.Snapshot())
}

func TestToggle_MissingUserID(t *testing.T) {
	t.Parallel()

	notifier := notifyMocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything, notify.Error(notify.MsgNoUser)).Return().Once()

	api := &fakeAPI{}
	kv := storage.NewMemory()
	s := scrap.New(api, kv, &fakeIdentity{authed: true}, scrap.WithNotifier(notifier))

	ok, err := s.Toggle(context.Background(), "7")

	require.ErrorIs(t, err, scrap.ErrNoUser)
	assert.False(t, ok)
	assert.False(t, s.IsScrapped("7"))
	assert.Empty(t, api.recorded())
	assert.Empty(t, kv.Snapshot())
}

func TestLoad_DiscardsResultForPreviousUser(t *testing.T) {
	t.Parallel()

	identity := &fakeIdentity{authed: true, userID: "A"}
	api := &fakeAPI{}
	api.get = func(string) (*gateway.Envelope, error) {
		identity.set(true, "B")
		return &gateway.Envelope{Success: true, Data: json.RawMessage(`["x"]`)}, nil
	}
	s, kv := newStore(t, api, identity)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "scraps_A", `["a"]`))

	require.NoError(t, s.Load(ctx))

	assert.False(t, s.IsScrapped("x"))
	assert.JSONEq(t, `["a"]`, cached(t, kv, "scraps_A"))
	_, ok, err := kv.Get(ctx, "scraps_B")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggle_RoundTrip(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{get: okData(`["1"]`)}
	s, kv := newStore(t, api, &fakeIdentity{authed: true, userID: "1"})
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	ok, err := s.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.IsScrapped("5"))
	assert.JSONEq(t, `["1","5"]`, cached(t, kv, "scraps_1"))

	ok, err = s.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.IsScrapped("5"))
	assert.JSONEq(t, `["1"]`, cached(t, kv, "scraps_1"))

	assert.Equal(t, []call{
		{http.MethodGet, "/scrap"},
		{http.MethodPost, "/scrap/5"},
		{http.MethodDelete, "/scrap/5"},
	}, api.recorded())
}

func TestToggle_EscapesID(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	s, _ := newStore(t, api, &fakeIdentity{authed: true, userID: "1"})

	_, err := s.Toggle(context.Background(), "11110/1")
	require.NoError(t, err)
	assert.Equal(t, []call{{http.MethodPost, "/scrap/11110%2F1"}}, api.recorded())
}

func TestToggle_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start      string
		id         domain.ListingID
		err        error
		wantNotice bool
	}{
		{
			name:       "add fails",
			start:      `["1"]`,
			id:         "2",
			err:        &gateway.HTTPError{StatusCode: http.StatusInternalServerError},
			wantNotice: true,
		},
		{
			name:       "remove fails",
			start:      `["1","2"]`,
			id:         "2",
			err:        &gateway.NetworkError{Err: errors.New("connection reset")},
			wantNotice: true,
		},
		{
			name:  "session expired is not announced twice",
			start: `["1"]`,
			id:    "2",
			err:   &gateway.HTTPError{StatusCode: http.StatusUnauthorized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			notifier := notifyMocks.NewMockNotifier(t)
			if tt.wantNotice {
				notifier.EXPECT().
					Notify(mock.Anything, notify.Error(notify.MsgScrapFailed)).
					Return().
					Once()
			}

			api := &fakeAPI{
				get:    okData(tt.start),
				mutate: func(string, string) error { return tt.err },
			}
			kv := storage.NewMemory()
			s := scrap.New(api, kv, &fakeIdentity{authed: true, userID: "1"}, scrap.WithNotifier(notifier))
			ctx := context.Background()
			require.NoError(t, s.Load(ctx))
			before := s.IDs()

			ok, err := s.Toggle(ctx, tt.id)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, ok)
			assert.Equal(t, before, s.IDs())
			assert.JSONEq(t, tt.start, cached(t, kv, "scraps_1"))
		})
	}
}

func TestToggle_Anonymous(t *testing.T) {
	t.Parallel()

	notifier := notifyMocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mock.Anything, notify.Warn(notify.MsgLoginRequired)).Return().Once()

	api := &fakeAPI{}
	s := scrap.New(api, storage.NewMemory(), &fakeIdentity{}, scrap.WithNotifier(notifier))

	ok, err := s.Toggle(context.Background(), "1")

	require.ErrorIs(t, err, scrap.ErrLoginRequired)
	assert.False(t, ok)
	assert.Zero(t, s.Count())
	assert.Empty(t, api.recorded())
}

func TestToggle_LogoutDuringRequestDoesNotRestoreMemory(t *testing.T) {
	t.Parallel()

	identity := &fakeIdentity{authed: true, userID: "1"}
	api := &fakeAPI{get: okData(`["1"]`)}
	s, kv := newStore(t, api, identity)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	api.mutate = func(string, string) error {
		identity.set(false, "")
		s.Clear()
		return &gateway.HTTPError{StatusCode: http.StatusUnauthorized}
	}

	ok, err := s.Toggle(ctx, "1")
	require.ErrorIs(t, err, gateway.ErrSessionExpired)
	assert.False(t, ok)

	assert.Zero(t, s.Count())
	assert.JSONEq(t, `["1"]`, cached(t, kv, "scraps_1"))
}

// Bookmarks made by one user must never appear for the next user on the
// same device, while the first user's cache survives for their return.
func TestUserSwitch(t *testing.T) {
	t.Parallel()

	identity := &fakeIdentity{}
	remote := map[domain.UserID][]string{"A": {}, "B": {"9"}}
	var mu sync.Mutex

	api := &fakeAPI{}
	api.get = func(string) (*gateway.Envelope, error) {
		mu.Lock()
		defer mu.Unlock()
		data, err := json.Marshal(remote[identity.UserID()])
		require.NoError(t, err)
		return &gateway.Envelope{Success: true, Data: data}, nil
	}
	api.mutate = func(method, path string) error {
		mu.Lock()
		defer mu.Unlock()
		if method == http.MethodPost {
			remote[identity.UserID()] = append(remote[identity.UserID()], path[len("/scrap/"):])
		}
		return nil
	}

	s, kv := newStore(t, api, identity)
	ctx := context.Background()

	identity.set(true, "A")
	require.NoError(t, s.Load(ctx))
	_, err := s.Toggle(ctx, "X")
	require.NoError(t, err)
	require.True(t, s.IsScrapped("X"))

	identity.set(false, "")
	s.Clear()
	assert.Zero(t, s.Count())

	identity.set(true, "B")
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.IsScrapped("X"))
	assert.Equal(t, ids("9"), s.IDs())

	assert.JSONEq(t, `["X"]`, cached(t, kv, "scraps_A"))
	assert.JSONEq(t, `["9"]`, cached(t, kv, "scraps_B"))

	identity.set(false, "")
	s.Clear()
	identity.set(true, "A")
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, ids("X"), s.IDs())
}

func TestToggle_Concurrent(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	s, kv := newStore(t, api, &fakeIdentity{authed: true, userID: "1"})
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []domain.ListingID{"1", "2", "3", "4", "5"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Toggle(ctx, id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, ids("1", "2", "3", "4", "5"), s.IDs())
	assert.JSONEq(t, `["1","2","3","4","5"]`, cached(t, kv, "scraps_1"))
}
