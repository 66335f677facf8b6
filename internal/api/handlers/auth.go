package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

// AuthHandler handles registration, login and the profile endpoint.
type AuthHandler struct {
	backend Backend
	// profileLookup makes login return only a token, so the client must
	// fetch the profile itself.
	profileLookup bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(b Backend, profileLookup bool) *AuthHandler {
	return &AuthHandler{backend: b, profileLookup: profileLookup}
}

// --- Input/Output types ---

// LoginInput is the login request.
type LoginInput struct {
	Body struct {
		Email    string `json:"email"    doc:"Account email"    minLength:"1"`
		Password string `json:"password" doc:"Account password" minLength:"1"`
	}
}

// LoginOutput carries the token and, unless profile lookup is enabled, the
// user.
type LoginOutput struct {
	Body struct {
		Token       string       `json:"token,omitempty"`
		AccessToken string       `json:"accessToken,omitempty"`
		User        *domain.User `json:"user,omitempty"`
	}
}

// RegisterInput is the registration request.
type RegisterInput struct {
	Body struct {
		Email    string `json:"email"              doc:"Account email"    minLength:"3"`
		Password string `json:"password"           doc:"Account password" minLength:"4"`
		Nickname string `json:"nickname,omitempty" doc:"Display name"`
	}
}

// RegisterOutput acknowledges a registration.
type RegisterOutput struct {
	Body struct {
		OK   bool        `json:"ok"`
		User domain.User `json:"user"`
	}
}

// ProfileInput identifies the caller.
type ProfileInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// ProfileOutput is the caller's profile.
type ProfileOutput struct {
	Body domain.User
}

// --- Handlers ---

// Login exchanges credentials for a token.
func (h *AuthHandler) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	token, user, err := h.backend.Login(ctx, domain.Credentials{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized(err.Error())
		}
		return nil, huma.Error500InternalServerError("login failed: " + err.Error())
	}

	resp := &LoginOutput{}
	if h.profileLookup {
		resp.Body.AccessToken = token
		return resp, nil
	}
	resp.Body.Token = token
	resp.Body.User = &user
	return resp, nil
}

// Register creates an account.
func (h *AuthHandler) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	user, err := h.backend.Register(ctx, domain.RegisterForm{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Nickname: input.Body.Nickname,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, huma.Error409Conflict(err.Error())
		}
		return nil, huma.Error500InternalServerError("registering: " + err.Error())
	}

	resp := &RegisterOutput{}
	resp.Body.OK = true
	resp.Body.User = user
	return resp, nil
}

// Profile returns the caller's profile.
func (h *AuthHandler) Profile(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
	user, err := authenticate(ctx, h.backend, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: user}, nil
}

// RegisterAuthRoutes registers authentication endpoints with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for a bearer token.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Login)

	for _, p := range []struct{ id, path string }{
		{"register", "/api/v1/auth/register"},
		{"signup", "/api/v1/auth/signup"},
	} {
		huma.Register(api, huma.Operation{
			OperationID:   p.id,
			Method:        http.MethodPost,
			Path:          p.path,
			Summary:       "Register an account",
			Tags:          []string{"auth"},
			DefaultStatus: http.StatusCreated,
			Errors:        []int{http.StatusConflict},
		}, h.Register)
	}

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/user/profile",
		Summary:     "Get the caller's profile",
		Tags:        []string{"user"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Profile)
}
