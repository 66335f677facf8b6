package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ErrorPayload is the body of a failed response, in one of the shapes
// backends are known to send.
type ErrorPayload interface {
	// Message returns the human-readable text carried by the payload.
	Message() string
	isErrorPayload()
}

// PlainText is a bare string body, JSON-quoted or not.
type PlainText string

// MessageObject is an object with a message field (or one of its aliases).
type MessageObject struct {
	Text string
}

// NestedDataObject is an object whose error lives under "data".
type NestedDataObject struct {
	Inner ErrorPayload
}

// Message implements ErrorPayload.
func (p PlainText) Message() string { return string(p) }

// Message implements ErrorPayload.
func (m MessageObject) Message() string { return m.Text }

// Message implements ErrorPayload.
func (n NestedDataObject) Message() string {
	if n.Inner == nil {
		return ""
	}
	return n.Inner.Message()
}

func (PlainText) isErrorPayload()        {}
func (MessageObject) isErrorPayload()    {}
func (NestedDataObject) isErrorPayload() {}

// messageKeys are checked in order when an object has no nested data.
var messageKeys = []string{"message", "error", "detail"}

// ParseErrorPayload classifies a failed response body. It returns nil for
// an empty body.
func ParseErrorPayload(body []byte) ErrorPayload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return PlainText(s)
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			return parseObject(obj, trimmed)
		}
	}

	return PlainText(strings.TrimSpace(string(trimmed)))
}

func parseObject(obj map[string]json.RawMessage, raw []byte) ErrorPayload {
	if text, ok := stringField(obj, "message"); ok {
		return MessageObject{Text: text}
	}
	if data, ok := obj["data"]; ok {
		if inner := ParseErrorPayload(data); inner != nil {
			return NestedDataObject{Inner: inner}
		}
	}
	for _, key := range messageKeys[1:] {
		if text, ok := stringField(obj, key); ok {
			return MessageObject{Text: text}
		}
	}
	return PlainText(string(raw))
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
