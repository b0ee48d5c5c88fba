// Package services contains the typed application services of the admin
// CLI, one per backend resource. Each is a thin layer over the api.Client
// that owns paths, query encoding and response envelopes.
package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
	"github.com/ezymarket/adminctl/internal/client/session"
	"github.com/ezymarket/adminctl/internal/logging"
)

// AuthService handles the authentication lifecycle.
//
// Contract:
//   - Login: authenticate, install the full session (user + token pair).
//   - Logout: end the backend session and wipe local state. Local state is
//     wiped even when the backend call fails.
//   - CurrentUser: fetch the profile and refresh the cached snapshot.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	api      *api.Client
	session  *session.Store
	validate *validator.Validate
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given client and
// session store.
func NewAuthService(client *api.Client, sess *session.Store, log logging.Logger) AuthService {
	return &authService{
		api:      client,
		session:  sess,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := loginRequest{Email: email, Password: password}
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	var resp loginResponse
	if err := a.api.Post(ctx, "/admin/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("login: response missing token or user")
	}

	if err := a.session.SetAuth(ctx, resp.User, resp.Token, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", resp.User.Email)
	return resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.api.Post(ctx, "/user/logout", nil, nil); err != nil {
		// The backend call is best effort; the local session goes away
		// regardless so stale tokens never outlive a logout.
		a.log.Warn(ctx, "backend logout failed", "error", err)
	}
	return a.session.ClearAuth(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp api.Data[*models.User]
	if err := a.api.Get(ctx, "/user/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("fetch profile: empty response")
	}
	if err := a.session.UpdateUser(ctx, resp.Data); err != nil {
		a.log.Warn(ctx, "failed to cache profile", "error", err)
	}
	return resp.Data, nil
}
