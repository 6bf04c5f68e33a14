package domain

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/crypto"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const oauth2StateKey = "state"

// oauth2ProviderTitles lists the providers a client may ask for, even when
// they are not configured on this server.
var oauth2ProviderTitles = map[string]string{
	"github": "GitHub",
	"google": "Google",
}

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	OAuth2Login(context.Context, *model.OAuth2LoginRequest) (*model.OAuth2LoginResponse, error)
	OAuth2Callback(context.Context, *model.OAuth2CallbackRequest) (*model.OAuth2CallbackResponse, error)
}

type authDomain struct {
	userRepo       repository.UserRepository
	oauth2Services []authenticator.IOAuth2Service
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Services []authenticator.IOAuth2Service,
) *authDomain {
	return &authDomain{
		userRepo:       userRepo,
		oauth2Services: oauth2Services,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing fields")
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{Username: username, Email: email, Password: hashed}
	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "User already exists")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{Message: "User created successfully"}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid credentials")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Password == entity.OAuthPassword || !crypto.ComparePassword(user.Password, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid credentials")
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: token}, nil
}

func (d *authDomain) OAuth2Login(
	ctx context.Context, req *model.OAuth2LoginRequest,
) (*model.OAuth2LoginResponse, error) {
	service, err := d.getOAuth2Service(req.Provider)
	if err != nil {
		return nil, err
	}

	state, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate oauth2 state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2LoginResponse{
		RedirectURL: service.AuthCodeURL(state),
		State:       state,
	}, nil
}

func (d *authDomain) OAuth2Callback(
	ctx context.Context, req *model.OAuth2CallbackRequest,
) (*model.OAuth2CallbackResponse, error) {
	service, err := d.getOAuth2Service(req.Provider)
	if err != nil {
		return nil, err
	}

	session, err := xcontext.SessionStore(ctx).Get(
		xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid state")
	}

	sessionState, _ := session.Values[oauth2StateKey].(string)
	if sessionState == "" || sessionState != req.State {
		return nil, errorx.New(errorx.BadRequest, "Invalid state")
	}

	if req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing authorization code")
	}

	serviceToken, err := service.ExchangeCode(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange %s authorization code: %v", service.Service(), err)
		return nil, errorx.New(errorx.Unauthenticated, "Cannot exchange authorization code")
	}

	identity, err := service.VerifyIdentity(ctx, serviceToken)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot verify %s identity: %v", service.Service(), err)
		return nil, errorx.New(errorx.Unauthenticated, "Cannot verify identity")
	}

	user, err := d.getOrCreateOAuth2User(ctx, service.Service(), identity)
	if err != nil {
		return nil, err
	}

	token, err := d.generateAccessToken(ctx, user)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2CallbackResponse{
		RedirectURL: "/feed?token=" + url.QueryEscape(token),
		AccessToken: token,
	}, nil
}

func (d *authDomain) getOAuth2Service(provider string) (authenticator.IOAuth2Service, error) {
	title, ok := oauth2ProviderTitles[provider]
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found oauth2 provider %s", provider)
	}

	for _, s := range d.oauth2Services {
		if s.Service() == provider {
			return s, nil
		}
	}

	return nil, errorx.New(errorx.Internal, "%s OAuth not configured", title)
}

// getOrCreateOAuth2User returns the user owning the identity email, creating
// an oauth-only account on first login.
func (d *authDomain) getOrCreateOAuth2User(
	ctx context.Context, service string, identity authenticator.OAuth2User,
) (*entity.User, error) {
	user, err := d.userRepo.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	username, err := d.uniqueUsername(ctx, oauth2BaseUsername(identity))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate username: %v", err)
		return nil, errorx.Unknown
	}

	user = &entity.User{
		Username: username,
		Email:    identity.Email,
		Password: entity.OAuthPassword,
	}

	if service == "github" {
		user.GitHubUsername = sql.NullString{Valid: true, String: identity.Username}
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}

		// A concurrent callback may have created the same account.
		user, err = d.userRepo.GetByEmail(ctx, identity.Email)
		if err != nil {
			return nil, errorx.New(errorx.AlreadyExists, "User already exists")
		}
	}

	return user, nil
}

func (d *authDomain) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		exists, err := d.userRepo.ExistsUsername(ctx, candidate)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}

		candidate = base + strconv.Itoa(i)
	}
}

func (d *authDomain) generateAccessToken(ctx context.Context, user *entity.User) (string, error) {
	return xcontext.TokenEngine(ctx).Generate(
		user.Username,
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Username: user.Username},
	)
}

func oauth2BaseUsername(identity authenticator.OAuth2User) string {
	if identity.Username != "" {
		return identity.Username
	}

	if name := strings.ToLower(strings.ReplaceAll(identity.Name, " ", "")); name != "" {
		return name
	}

	local, _, _ := strings.Cut(identity.Email, "@")
	return local
}
