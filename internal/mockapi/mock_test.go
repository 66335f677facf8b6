package mockapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/gateway/mocks"
	"github.com/donaldgifford/bokdeok/internal/mockapi"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func newMock(t *testing.T, fallback gateway.BackendClient) (*mockapi.MockBackend, *storage.Memory) {
	t.Helper()

	kv := storage.NewMemory()
	m, err := mockapi.New(fallback, kv, mockapi.WithLatency(0))
	require.NoError(t, err)
	return m, kv
}

func send(t *testing.T, m *mockapi.MockBackend, method, path string, body any) *gateway.Response {
	t.Helper()

	req := &gateway.Request{Method: method, Path: path}
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req.Body = data
	}
	resp, err := m.Send(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.Mocked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	return resp
}

func TestMockBackend_Login(t *testing.T) {
	t.Parallel()

	m, _ := newMock(t, nil)
	resp := send(t, m, http.MethodPost, "/auth/login",
		domain.Credentials{Email: "someone@bokdeok.com", Password: "pw"})

	var got struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.NotEmpty(t, got.Token)
	assert.Equal(t, domain.UserID("1"), got.User.ID)
	assert.Equal(t, "someone@bokdeok.com", got.User.Email)
	assert.Equal(t, "복덕이유저", got.User.Nickname)
}

func TestMockBackend_Register(t *testing.T) {
	t.Parallel()

	m, _ := newMock(t, nil)
	for _, path := range []string{"/auth/register", "/auth/signup"} {
		resp := send(t, m, http.MethodPost, path, domain.RegisterForm{Email: "a@b.c"})
		assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	}
}

func TestMockBackend_Profile(t *testing.T) {
	t.Parallel()

	m, kv := newMock(t, nil)

	resp := send(t, m, http.MethodGet, "/user/profile", nil)
	var got domain.User
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.Equal(t, mockapi.MockUser, got)

	stored := domain.User{ID: "42", Email: "stored@bokdeok.com"}
	require.NoError(t, storage.SetJSON(context.Background(), kv, storage.KeyUser, stored))
	resp = send(t, m, http.MethodGet, "/user/profile", nil)
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.Equal(t, stored, got)
}

func TestMockBackend_ListScraps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, kv storage.KV)
		want  string
	}{
		{
			name: "no stored user",
			want: `[]`,
		},
		{
			name: "mock user without cache gets seed",
			setup: func(t *testing.T, kv storage.KV) {
				t.Helper()
				require.NoError(t, storage.SetJSON(context.Background(), kv, storage.KeyUser, mockapi.MockUser))
			},
			want: `["1","3"]`,
		},
		{
			name: "cached ids win",
			setup: func(t *testing.T, kv storage.KV) {
				t.Helper()
				ctx := context.Background()
				require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyUser, mockapi.MockUser))
				require.NoError(t, kv.Set(ctx, "scraps_1", `["4"]`))
			},
			want: `["4"]`,
		},
		{
			name: "other user without cache",
			setup: func(t *testing.T, kv storage.KV) {
				t.Helper()
				require.NoError(t, storage.SetJSON(context.Background(), kv, storage.KeyUser, domain.User{ID: "9"}))
			},
			want: `[]`,
		},
		{
			name: "cached empty list",
			setup: func(t *testing.T, kv storage.KV) {
				t.Helper()
				ctx := context.Background()
				require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyUser, mockapi.MockUser))
				require.NoError(t, kv.Set(ctx, "scraps_1", `[]`))
			},
			want: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, kv := newMock(t, nil)
			if tt.setup != nil {
				tt.setup(t, kv)
			}
			resp := send(t, m, http.MethodGet, "/scrap", nil)
			assert.JSONEq(t, tt.want, string(resp.Body))
		})
	}
}

func TestMockBackend_SetScrap(t *testing.T) {
	t.Parallel()

	m, _ := newMock(t, nil)

	resp := send(t, m, http.MethodPost, "/scrap/17", nil)
	assert.JSONEq(t, `{"id":"17","scrapped":true}`, string(resp.Body))

	resp = send(t, m, http.MethodDelete, "/scrap/17", nil)
	assert.JSONEq(t, `{"id":"17","scrapped":false}`, string(resp.Body))
}

func TestMockBackend_Houses(t *testing.T) {
	t.Parallel()

	m, _ := newMock(t, nil)
	resp := send(t, m, http.MethodGet, "/estate", nil)

	var houses []domain.HouseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &houses))
	require.Len(t, houses, 4)
	assert.Equal(t, "4", houses[3].AptSeq)

	amount, ok := houses[3].LatestDealAmount.Float()
	assert.True(t, ok)
	assert.InDelta(t, 55000.0, amount, 0.001)
}

func TestMockBackend_FallsThrough(t *testing.T) {
	t.Parallel()

	fallback := mocks.NewMockBackendClient(t)
	want := &gateway.Response{StatusCode: http.StatusOK, Body: []byte(`"pong"`)}

	unmatched := []*gateway.Request{
		{Method: http.MethodGet, Path: "/chat"},
		{Method: http.MethodGet, Path: "/scrap/3"},
		{Method: http.MethodPost, Path: "/scrap/"},
		{Method: http.MethodPut, Path: "/user/profile"},
	}
	for _, req := range unmatched {
		fallback.EXPECT().Send(mock.Anything, req).Return(want, nil).Once()
	}

	m, _ := newMock(t, fallback)
	for _, req := range unmatched {
		resp, err := m.Send(context.Background(), req)
		require.NoError(t, err)
		assert.Same(t, want, resp)
	}
}

func TestMockBackend_NoFallback(t *testing.T) {
	t.Parallel()

	m, _ := newMock(t, nil)
	_, err := m.Send(context.Background(), &gateway.Request{Method: http.MethodGet, Path: "/chat"})

	var netErr *gateway.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestMockBackend_LatencyHonorsContext(t *testing.T) {
	t.Parallel()

	m, err := mockapi.New(nil, storage.NewMemory(), mockapi.WithLatency(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = m.Send(ctx, &gateway.Request{Method: http.MethodGet, Path: "/estate"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestMockBackend_ThroughGateway(t *testing.T) {
	t.Parallel()

	m, kv := newMock(t, nil)
	g := gateway.New(m, kv)

	env, err := g.Get(context.Background(), "/estate")
	require.NoError(t, err)
	assert.True(t, env.Success)

	var houses []domain.HouseDTO
	require.NoError(t, env.Decode(&houses))
	assert.Len(t, houses, 4)
}
