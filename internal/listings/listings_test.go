package listings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/listings"
	"github.com/donaldgifford/bokdeok/internal/mockapi"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

type stubAPI struct {
	env *gateway.Envelope
	err error
}

func (s stubAPI) Get(context.Context, string) (*gateway.Envelope, error) {
	return s.env, s.err
}

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		api     stubAPI
		wantLen int
		wantErr string
	}{
		{
			name: "maps houses",
			api: stubAPI{env: &gateway.Envelope{Success: true, Data: json.RawMessage(
				`[{"aptSeq":"a","aptNm":"래미안"},{"aptSeq":"b"}]`,
			)}},
			wantLen: 2,
		},
		{
			name:    "null data is empty",
			api:     stubAPI{env: &gateway.Envelope{Success: true, Data: json.RawMessage(`null`)}},
			wantLen: 0,
		},
		{
			name:    "wrong shape",
			api:     stubAPI{env: &gateway.Envelope{Success: true, Data: json.RawMessage(`{"a":1}`)}},
			wantErr: "decoding response",
		},
		{
			name:    "gateway error",
			api:     stubAPI{err: &gateway.HTTPError{StatusCode: http.StatusBadGateway}},
			wantErr: "listing estates: API error (HTTP 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := listings.New(tt.api).List(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestList_MockCatalogue(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	m, err := mockapi.New(nil, kv, mockapi.WithLatency(0))
	require.NoError(t, err)
	svc := listings.New(gateway.New(m, kv))

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, domain.ListingID("1"), got[0].ID)
	assert.Equal(t, "강남역 5분거리 깔끔한 원룸", got[0].Title)
	assert.Equal(t, "역삼동", got[0].Address)
	assert.Nil(t, got[0].Price)

	assert.Equal(t, "왕십리로", got[3].Address)
	require.NotNil(t, got[3].Price)
	assert.True(t, got[3].Price.IsPurchase())
	assert.InDelta(t, 55000.0, got[3].Price.Purchase, 0.001)
	assert.InDelta(t, 37.544569, got[3].Location.Lat, 1e-9)

	found, ok, err := svc.Find(context.Background(), "3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "홍대입구역 복층 오피스텔", found.Title)

	_, ok, err = svc.Find(context.Background(), "404")
	require.NoError(t, err)
	assert.False(t, ok)
}
