package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Profile is the identity returned by the login provider.
type Profile struct {
	OpenID string
	Name   string
	Email  string
	Method string
}

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (int64, error)
	SignIn(ctx context.Context, p Profile) (*models.User, error)
}

type authService struct {
	cfg   config.Config
	oauth *oauth2.Config
	u     repository.UserRepository
}

func GoogleOAuthConfig(cfg config.Google, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg:   cfg,
		oauth: GoogleOAuthConfig(cfg.Google, oauthapi.UserinfoEmailScope, oauthapi.UserinfoProfileScope),
		u:     u,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := invalid("authorization code is empty")
		slog.Info(err.Error())
		return 0, err
	}
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" || s.oauth.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	svc, err := oauthapi.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, token)))
	if err != nil {
		return 0, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	user, err := s.SignIn(ctx, Profile{OpenID: info.Id, Name: info.Name, Email: info.Email, Method: "google"})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// SignIn creates or refreshes the user for a provider identity. The
// configured owner always signs in as admin.
func (s *authService) SignIn(ctx context.Context, p Profile) (*models.User, error) {
	if p.OpenID == "" {
		return nil, invalid("identity has no subject id")
	}

	role := models.RoleUser
	if s.cfg.OwnerOpenID != "" && p.OpenID == s.cfg.OwnerOpenID {
		role = models.RoleAdmin
	}

	user := &models.User{
		OpenID:      p.OpenID,
		Name:        p.Name,
		Email:       p.Email,
		LoginMethod: p.Method,
		Role:        role,
	}
	id, err := s.u.Upsert(ctx, user)
	if err != nil {
		return nil, err
	}

	stored, ok, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		user.ID = id
		return user, nil
	}
	return stored, nil
}
