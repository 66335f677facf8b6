// Package scrap keeps the signed-in user's bookmarked ("scrapped") listings.
// The set lives in memory, is cached durably per user, and is reconciled
// with the backend, which is the source of truth.
package scrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/metrics"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

const listPath = "/scrap"

var (
	// ErrLoginRequired is returned when a toggle is attempted while anonymous.
	ErrLoginRequired = errors.New("login required")
	// ErrNoUser is returned when the session carries no user id, so the
	// bookmarks cannot be scoped to anyone.
	ErrNoUser = errors.New("signed-in user has no id")
)

// API is the subset of the gateway the scrap store uses.
type API interface {
	Get(ctx context.Context, path string) (*gateway.Envelope, error)
	Post(ctx context.Context, path string, body any) (*gateway.Envelope, error)
	Delete(ctx context.Context, path string) (*gateway.Envelope, error)
}

// Identity reports who is signed in.
type Identity interface {
	IsAuthenticated() bool
	UserID() domain.UserID
}

// Store is the bookmark set. Load and Toggle run one at a time; Clear and
// the read methods never wait for them.
type Store struct {
	api      API
	kv       storage.KV
	identity Identity
	log      *slog.Logger
	notifier notify.Notifier

	opMu sync.Mutex

	mu  sync.RWMutex
	ids map[domain.ListingID]struct{}
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithNotifier sets where rollback and login-required notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// New creates an empty Store.
func New(api API, kv storage.KV, identity Identity, opts ...Option) *Store {
	s := &Store{
		api:      api,
		kv:       kv,
		identity: identity,
		log:      slog.Default(),
		ids:      make(map[domain.ListingID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.log)
	}
	return s
}

// Load reconciles the set for the signed-in user. The cached set is shown
// first; a successful remote fetch then replaces both memory and cache. A
// failed fetch keeps the cached set and is not reported to the caller.
func (s *Store) Load(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.identity.IsAuthenticated() {
		s.Clear()
		metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncSkipped).Inc()
		return nil
	}

	userID := s.identity.UserID()
	key, ok := storage.ScrapsKey(userID.String())
	if !ok {
		metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncSkipped).Inc()
		return nil
	}

	var cached []domain.ListingID
	if _, err := storage.GetJSON(ctx, s.kv, key, &cached); err != nil {
		s.log.Warn("reading cached scraps", "key", key, "error", err)
		cached = nil
	}
	s.replace(cached)

	env, err := s.api.Get(ctx, listPath)
	if err != nil {
		s.log.Warn("fetching scraps failed, using cache", "count", len(cached), "error", err)
		metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncCache).Inc()
		return nil
	}

	remote, err := decodeIDs(env)
	if err != nil {
		s.log.Warn("unexpected scrap list, using cache", "error", err)
		metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncCache).Inc()
		return nil
	}

	// The user may have changed while the request was in flight.
	if !s.identity.IsAuthenticated() || s.identity.UserID() != userID {
		s.log.Debug("discarding scraps fetched for a previous session", "user_id", userID)
		metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncSkipped).Inc()
		return nil
	}

	s.replace(remote)
	if err := storage.SetJSON(ctx, s.kv, key, s.IDs()); err != nil {
		return fmt.Errorf("caching scraps: %w", err)
	}

	metrics.ScrapSyncTotal.WithLabelValues(metrics.SyncRemote).Inc()
	s.log.Debug("scraps synced", "user_id", userID, "count", len(remote))
	return nil
}

// Toggle flips id optimistically, then asks the backend to match. When the
// backend call fails the flip is undone and a notice is raised, except for
// expired sessions, which are already reported by the logout they trigger.
// It reports whether the flip was kept.
func (s *Store) Toggle(ctx context.Context, id domain.ListingID) (bool, error) {
	if !s.identity.IsAuthenticated() {
		metrics.ScrapTogglesTotal.WithLabelValues(metrics.ToggleRejected).Inc()
		s.notifier.Notify(ctx, notify.Warn(notify.MsgLoginRequired))
		return false, ErrLoginRequired
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	userID := s.identity.UserID()
	key, hasKey := storage.ScrapsKey(userID.String())
	if !hasKey {
		metrics.ScrapTogglesTotal.WithLabelValues(metrics.ToggleRejected).Inc()
		s.log.Warn("scrap toggle without a user id", "id", id)
		s.notifier.Notify(ctx, notify.Error(notify.MsgNoUser))
		return false, ErrNoUser
	}

	s.mu.Lock()
	_, was := s.ids[id]
	before := s.snapshotLocked()
	if was {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	after := s.snapshotLocked()
	s.mu.Unlock()

	s.writeCache(ctx, key, after)

	err := s.setRemote(ctx, id, !was)
	if err == nil {
		metrics.ScrapTogglesTotal.WithLabelValues(metrics.ToggleApplied).Inc()
		return true, nil
	}

	s.writeCache(ctx, key, before)

	s.mu.Lock()
	if s.identity.IsAuthenticated() && s.identity.UserID() == userID {
		if was {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
	}
	s.mu.Unlock()

	metrics.ScrapTogglesTotal.WithLabelValues(metrics.ToggleRolledBack).Inc()
	s.log.Warn("scrap toggle rolled back", "id", id, "error", err)

	if !errors.Is(err, gateway.ErrSessionExpired) {
		s.notifier.Notify(ctx, notify.Error(notify.MsgScrapFailed))
	}

	return false, fmt.Errorf("updating scrap %s: %w", id, err)
}

// setRemote makes the backend's membership for id match scrapped. Adding
// twice or removing a missing entry is harmless on the backend.
func (s *Store) setRemote(ctx context.Context, id domain.ListingID, scrapped bool) error {
	path := listPath + "/" + url.PathEscape(id.String())
	var err error
	if scrapped {
		_, err = s.api.Post(ctx, path, nil)
	} else {
		_, err = s.api.Delete(ctx, path)
	}
	return err
}

func (s *Store) writeCache(ctx context.Context, key string, ids []domain.ListingID) {
	if err := storage.SetJSON(ctx, s.kv, key, ids); err != nil {
		s.log.Warn("writing scrap cache", "key", key, "error", err)
	}
}

// Clear empties the in-memory set. The durable cache is kept so the next
// login for the same user starts from it.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
}

// IsScrapped reports whether id is bookmarked.
func (s *Store) IsScrapped(id domain.ListingID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of bookmarks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the bookmarks in sorted order.
func (s *Store) IDs() []domain.ListingID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []domain.ListingID {
	ids := make([]domain.ListingID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) replace(ids []domain.ListingID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}
