package gateway_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bokdeok/internal/gateway"
)

func TestEnvelope_Decode(t *testing.T) {
	t.Parallel()

	env := &gateway.Envelope{Success: true, Data: json.RawMessage(`{"id":"7"}`)}
	var got struct {
		ID string `json:"id"`
	}
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, "7", got.ID)
	assert.False(t, env.IsNull())
}

func TestEnvelope_DecodeNull(t *testing.T) {
	t.Parallel()

	ids := []string{"keep"}
	env := &gateway.Envelope{Success: true, Data: json.RawMessage("null")}
	require.NoError(t, env.Decode(&ids))
	assert.Equal(t, []string{"keep"}, ids)
	assert.True(t, env.IsNull())

	var nilEnv *gateway.Envelope
	assert.True(t, nilEnv.IsNull())
	require.NoError(t, nilEnv.Decode(&ids))
}

func TestEnvelope_DecodeMismatch(t *testing.T) {
	t.Parallel()

	env := &gateway.Envelope{Success: true, Data: json.RawMessage(`{"id":1}`)}
	var ids []string
	err := env.Decode(&ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
