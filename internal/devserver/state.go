package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/bokdeok/internal/api/handlers"
	"github.com/donaldgifford/bokdeok/internal/mockapi"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

type account struct {
	user domain.User
	hash []byte
}

// State is the development server's in-memory backend. It satisfies
// handlers.Backend.
type State struct {
	mu       sync.RWMutex
	cost     int
	log      *slog.Logger
	nextID   int
	accounts map[string]*account // by lowercased email
	tokens   map[string]domain.UserID
	scraps   map[domain.UserID]map[domain.ListingID]struct{}
	houses   []domain.HouseDTO
}

// StateOption configures a State.
type StateOption func(*State)

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) StateOption {
	return func(s *State) { s.cost = cost }
}

// WithStateLogger sets the logger.
func WithStateLogger(log *slog.Logger) StateOption {
	return func(s *State) { s.log = log }
}

// WithHouses replaces the listing catalogue.
func WithHouses(houses []domain.HouseDTO) StateOption {
	return func(s *State) { s.houses = houses }
}

// NewState creates an empty State serving the mock listing catalogue.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{
		cost:     bcrypt.DefaultCost,
		log:      slog.Default(),
		accounts: make(map[string]*account),
		tokens:   make(map[string]domain.UserID),
		scraps:   make(map[domain.UserID]map[domain.ListingID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.houses == nil {
		houses, err := mockapi.Houses()
		if err != nil {
			return nil, err
		}
		s.houses = houses
	}

	return s, nil
}

// Seed registers an account and bookmarks ids for it. It is meant for
// start-up fixtures.
func (s *State) Seed(ctx context.Context, form domain.RegisterForm, ids ...domain.ListingID) (domain.User, error) {
	user, err := s.Register(ctx, form)
	if err != nil {
		return domain.User{}, fmt.Errorf("seeding %s: %w", form.Email, err)
	}
	for _, id := range ids {
		if err := s.SetScrap(ctx, user.ID, id, true); err != nil {
			return domain.User{}, fmt.Errorf("seeding scrap %s: %w", id, err)
		}
	}
	return user, nil
}

// Register creates an account.
func (s *State) Register(_ context.Context, form domain.RegisterForm) (domain.User, error) {
	key := normalizeEmail(form.Email)

	// Hash before taking the lock; bcrypt is slow on purpose.
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[key]; ok {
		return domain.User{}, handlers.ErrEmailTaken
	}

	s.nextID++
	user := domain.User{
		ID:       domain.UserID(strconv.Itoa(s.nextID)),
		Email:    strings.TrimSpace(form.Email),
		Nickname: form.Nickname,
	}
	s.accounts[key] = &account{user: user, hash: hash}
	s.log.Info("account registered", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// Login checks credentials and issues a new token.
func (s *State) Login(_ context.Context, creds domain.Credentials) (string, domain.User, error) {
	s.mu.RLock()
	acct, ok := s.accounts[normalizeEmail(creds.Email)]
	s.mu.RUnlock()

	if !ok {
		return "", domain.User{}, handlers.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.User{}, handlers.ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("checking password: %w", err)
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = acct.user.ID
	s.mu.Unlock()

	return token, acct.user, nil
}

// Revoke invalidates a token. Later requests carrying it get 401.
func (s *State) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// UserForToken resolves a bearer token.
func (s *State) UserForToken(_ context.Context, token string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokens[token]
	if !ok {
		return domain.User{}, handlers.ErrUnknownToken
	}
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			return acct.user, nil
		}
	}
	return domain.User{}, handlers.ErrUnknownToken
}

// Scraps returns the user's bookmarks in ascending order.
func (s *State) Scraps(_ context.Context, userID domain.UserID) ([]domain.ListingID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.scraps[userID]
	ids := make([]domain.ListingID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// SetScrap adds or removes a bookmark. Both directions are idempotent.
func (s *State) SetScrap(_ context.Context, userID domain.UserID, id domain.ListingID, scrapped bool) error {
	if !s.hasListing(id) {
		return handlers.ErrUnknownListing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.scraps[userID]
	if !ok {
		set = make(map[domain.ListingID]struct{})
		s.scraps[userID] = set
	}
	if scrapped {
		set[id] = struct{}{}
	} else {
		delete(set, id)
	}
	return nil
}

// Houses returns the listing catalogue.
func (s *State) Houses(_ context.Context) ([]domain.HouseDTO, error) {
	return slices.Clone(s.houses), nil
}

func (s *State) hasListing(id domain.ListingID) bool {
	return slices.ContainsFunc(s.houses, func(h domain.HouseDTO) bool {
		return h.AptSeq == string(id)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
