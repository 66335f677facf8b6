// Package logger builds the slog.Logger shared by the bokdeok client and
// development server. Credentials never reach the output: attributes named
// like a password or token are masked.
package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Redacted replaces the value of a sensitive attribute.
const Redacted = "[REDACTED]"

// sensitiveKeys are compared case-insensitively against attribute keys.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"accesstoken":   {},
	"authorization": {},
}

// New creates a logger writing to stderr.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel converts a level string to slog.Level.
// Recognized values: "debug", "warn", "error". Everything else returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Sensitive reports whether values stored under key must not be logged.
func Sensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// RedactJSON masks sensitive fields at any depth of a JSON document so it
// can be logged as a single value. Bodies that are not JSON are returned
// unchanged.
func RedactJSON(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return string(body)
	}
	if !redactValue(doc) {
		return string(body)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return string(body)
	}
	return string(out)
}

// redactValue masks sensitive keys in place and reports whether any were
// found.
func redactValue(v any) bool {
	masked := false
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if Sensitive(k) {
				t[k] = Redacted
				masked = true
				continue
			}
			masked = redactValue(child) || masked
		}
	case []any:
		for _, child := range t {
			masked = redactValue(child) || masked
		}
	}
	return masked
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if Sensitive(a.Key) && a.Value.Kind() != slog.KindGroup {
		return slog.String(a.Key, Redacted)
	}
	return a
}
