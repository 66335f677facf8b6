package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// Errors a Backend returns for expected failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownToken       = errors.New("invalid or expired token")
	ErrUnknownListing     = errors.New("listing not found")
)

// Backend is the state the handlers serve.
type Backend interface {
	Register(ctx context.Context, form domain.RegisterForm) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error)
	UserForToken(ctx context.Context, token string) (domain.User, error)
	Scraps(ctx context.Context, userID domain.UserID) ([]domain.ListingID, error)
	SetScrap(ctx context.Context, userID domain.UserID, id domain.ListingID, scrapped bool) error
	Houses(ctx context.Context) ([]domain.HouseDTO, error)
}

// authenticate resolves a bearer Authorization header to a user.
func authenticate(ctx context.Context, b Backend, header string) (domain.User, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return domain.User{}, huma.Error401Unauthorized("missing bearer token")
	}
	user, err := b.UserForToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, ErrUnknownToken) {
			return domain.User{}, huma.Error401Unauthorized(err.Error())
		}
		return domain.User{}, huma.Error500InternalServerError("resolving token: " + err.Error())
	}
	return user, nil
}
