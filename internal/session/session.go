// Package session owns the authentication token and the signed-in user.
// The store is anonymous until a login succeeds and returns to anonymous on
// logout or when the backend rejects the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/internal/metrics"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/storage"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// DefaultRegisterPath is the registration endpoint.
const DefaultRegisterPath = "/auth/register"

const (
	loginPath   = "/auth/login"
	profilePath = "/user/profile"
)

// API is the subset of the gateway the session store uses.
type API interface {
	Get(ctx context.Context, path string) (*gateway.Envelope, error)
	Post(ctx context.Context, path string, body any) (*gateway.Envelope, error)
	SetAuthToken(token string)
	ClearAuthToken()
}

// ScrapSyncer is reloaded after login and cleared on logout.
type ScrapSyncer interface {
	Load(ctx context.Context) error
	Clear()
}

// Store holds the session. It is safe for concurrent use; no lock is held
// while a request is in flight.
type Store struct {
	api          API
	kv           storage.KV
	log          *slog.Logger
	notifier     notify.Notifier
	registerPath string
	onLogout     func()

	mu     sync.RWMutex
	token  string
	user   *domain.User
	scraps ScrapSyncer
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithNotifier sets where session notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithRegisterPath overrides the registration endpoint, e.g. /auth/signup.
func WithRegisterPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.registerPath = path
		}
	}
}

// WithLogoutHook sets a function run after every logout.
func WithLogoutHook(fn func()) Option {
	return func(s *Store) {
		s.onLogout = fn
	}
}

// New creates an anonymous Store. Call Init to restore a saved session.
func New(api API, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		api:          api,
		kv:           kv,
		log:          slog.Default(),
		registerPath: DefaultRegisterPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.log)
	}
	return s
}

// SetScrapSyncer wires the bookmark store. It is set after construction
// because the bookmark store reads its identity from this one.
func (s *Store) SetScrapSyncer(sync ScrapSyncer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scraps = sync
}

// Init restores the token and user from storage.
func (s *Store) Init(ctx context.Context) error {
	token, ok, err := s.kv.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return err
	}

	var user domain.User
	hasUser, err := storage.GetJSON(ctx, s.kv, storage.KeyUser, &user)
	if err != nil {
		// A corrupt user record is dropped rather than blocking startup.
		s.log.Warn("discarding stored user", "error", err)
		hasUser = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok || token == "" {
		s.token, s.user = "", nil
		return nil
	}

	s.token = token
	s.user = nil
	if hasUser {
		s.user = &user
	}
	s.api.SetAuthToken(token)
	return nil
}

// Reset returns the store to anonymous in memory only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// UserID returns the signed-in user's id, or "" when anonymous.
func (s *Store) UserID() domain.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return ""
	}
	return s.user.ID
}

// User returns a copy of the signed-in user.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token returns the current token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

type loginResponse struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

// Login authenticates and persists the session. Backends may return the
// user alongside the token, or the token alone, in which case the profile
// is fetched separately.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	env, err := s.api.Post(ctx, loginPath, creds)
	if err != nil {
		return domain.User{}, s.loginFailed(err)
	}

	var resp loginResponse
	if err := env.Decode(&resp); err != nil {
		return domain.User{}, s.loginFailed(err)
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return domain.User{}, s.loginFailed(errors.New("login response did not include a token"))
	}

	// The profile request must carry the new token.
	if err := s.kv.Set(ctx, storage.KeyAccessToken, token); err != nil {
		return domain.User{}, s.loginFailed(err)
	}
	s.api.SetAuthToken(token)

	user := resp.User
	if user == nil {
		user, err = s.fetchProfile(ctx, creds.Email)
		if err != nil {
			s.discardToken(ctx)
			return domain.User{}, s.loginFailed(err)
		}
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyUser, user); err != nil {
		s.discardToken(ctx)
		return domain.User{}, s.loginFailed(err)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	scraps := s.scraps
	s.mu.Unlock()

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info("logged in", "user_id", user.ID, "email", user.Email)

	if scraps != nil {
		if err := scraps.Load(ctx); err != nil {
			s.log.Warn("loading scraps after login", "error", err)
		}
	}

	return *user, nil
}

// fetchProfile degrades to a user known only by email when the profile
// cannot be fetched. A rejected token fails the login instead.
func (s *Store) fetchProfile(ctx context.Context, email string) (*domain.User, error) {
	env, err := s.api.Get(ctx, profilePath)
	if errors.Is(err, gateway.ErrSessionExpired) {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if err != nil {
		s.log.Warn("fetching profile after login", "error", err)
		return &domain.User{Email: email}, nil
	}

	var user domain.User
	if err := env.Decode(&user); err != nil || env.IsNull() {
		s.log.Warn("decoding profile after login", "error", err)
		return &domain.User{Email: email}, nil
	}
	if user.Email == "" {
		user.Email = email
	}
	return &user, nil
}

// discardToken undoes the token written before a login step that failed.
func (s *Store) discardToken(ctx context.Context) {
	if err := s.kv.Delete(ctx, storage.KeyAccessToken); err != nil {
		s.log.Warn("removing token after failed login", "error", err)
	}
	s.api.ClearAuthToken()
}

func (s *Store) loginFailed(err error) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.log.Warn("login failed", "error", err)
	return &AuthError{Op: "login", Message: gateway.Message(err), Err: err}
}

// Register creates an account. It does not sign in.
func (s *Store) Register(ctx context.Context, form domain.RegisterForm) error {
	if _, err := s.api.Post(ctx, s.registerPath, form); err != nil {
		s.log.Warn("registration failed", "error", err)
		return &AuthError{Op: "register", Message: gateway.Message(err), Err: err}
	}
	s.log.Info("registered", "email", form.Email)
	return nil
}

// Logout ends the session. It is safe to call when already anonymous. The
// bookmark cache stays on disk for the next login.
func (s *Store) Logout(ctx context.Context) {
	s.logout(ctx)
}

// ForceLogout ends the session after the backend rejected the token. Only
// the first of several concurrent calls acts and notifies.
func (s *Store) ForceLogout(ctx context.Context) {
	if !s.logout(ctx) {
		return
	}
	metrics.ForcedLogoutsTotal.Inc()
	s.notifier.Notify(ctx, notify.Warn(notify.MsgSessionExpired))
}

// logout clears the session and reports whether it was authenticated.
func (s *Store) logout(ctx context.Context) bool {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token, s.user = "", nil
	scraps := s.scraps
	s.mu.Unlock()

	for _, key := range []string{storage.KeyAccessToken, storage.KeyUser} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.log.Warn("removing stored session", "key", key, "error", err)
		}
	}
	s.api.ClearAuthToken()

	if scraps != nil {
		scraps.Clear()
	}
	if s.onLogout != nil {
		s.onLogout()
	}
	if wasAuthenticated {
		s.log.Info("logged out")
	}
	return wasAuthenticated
}
