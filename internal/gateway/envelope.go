package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the uniform wrapper around every API outcome.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Decode unmarshals the envelope's data into dst. Empty or null data
// leaves dst untouched.
func (e *Envelope) Decode(dst any) error {
	if e == nil || isNull(e.Data) {
		return nil
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// IsNull reports whether the envelope carries no data.
func (e *Envelope) IsNull() bool {
	return e == nil || isNull(e.Data)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// rawData returns body as JSON, quoting it as a string when the backend
// sent something other than JSON.
func rawData(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return json.RawMessage("null")
	}
	return quoted
}
