// Package storage defines the durable key-value store that holds client
// state across restarts: the access token, the signed-in user and each
// user's bookmark cache. All stores depend on the KV interface, never on a
// concrete backend.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Well-known keys.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"

	scrapsKeyPrefix = "scraps_"
)

// KV is a string key-value store. Reads and writes are expected to be
// fast and local; implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ScrapsKey returns the per-user bookmark cache key. It returns false when
// userID is empty so callers never share a cache between users.
func ScrapsKey(userID string) (string, bool) {
	if userID == "" {
		return "", false
	}
	return scrapsKeyPrefix + userID, true
}

// GetJSON decodes the JSON value stored under key into dst. It reports
// false without touching dst when the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data))
}
