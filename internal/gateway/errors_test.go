package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/bokdeok/internal/gateway"
)

func TestHTTPError_IsSessionExpired(t *testing.T) {
	t.Parallel()

	unauthorized := &gateway.HTTPError{StatusCode: http.StatusUnauthorized}
	forbidden := &gateway.HTTPError{StatusCode: http.StatusForbidden}

	assert.ErrorIs(t, unauthorized, gateway.ErrSessionExpired)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", unauthorized), gateway.ErrSessionExpired)
	assert.NotErrorIs(t, forbidden, gateway.ErrSessionExpired)
}

func TestHTTPError_Error(t *testing.T) {
	t.Parallel()

	err := &gateway.HTTPError{
		StatusCode: http.StatusConflict,
		Envelope:   gateway.Envelope{Message: "already exists"},
	}
	assert.Equal(t, "API error (HTTP 409): already exists", err.Error())
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	refused := &gateway.NetworkError{
		Method: http.MethodGet,
		URL:    "http://localhost:1/api/v1/scrap",
		Err:    fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED),
	}
	assert.Equal(t, "API server not running at http://localhost:1/api/v1/scrap", refused.Error())
	assert.ErrorIs(t, refused, syscall.ECONNREFUSED)
	assert.False(t, refused.Timeout())

	timeout := &gateway.NetworkError{Method: http.MethodGet, URL: "u", Err: context.DeadlineExceeded}
	assert.True(t, timeout.Timeout())
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "http error",
			err:  &gateway.HTTPError{StatusCode: 400, Envelope: gateway.Envelope{Message: "bad email"}},
			want: "bad email",
		},
		{
			name: "timeout",
			err:  &gateway.NetworkError{Err: context.DeadlineExceeded},
			want: "the server took too long to respond",
		},
		{
			name: "unreachable",
			err:  &gateway.NetworkError{Err: syscall.ECONNREFUSED},
			want: "could not reach the server",
		},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gateway.Message(tt.err))
		})
	}
}
