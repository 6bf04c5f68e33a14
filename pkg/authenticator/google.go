package authenticator

import (
	"context"
	"errors"

	"github.com/codehub/backend/config"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2"
)

type googleClaims struct {
	Subject string `mapstructure:"sub"`
	Email   string `mapstructure:"email"`
	Name    string `mapstructure:"name"`
}

type googleService struct {
	*oidc.Provider
	config oauth2.Config
}

// NewGoogleService discovers the openid configuration of the issuer, so it
// needs network access.
func NewGoogleService(ctx context.Context, cfg config.OAuth2Config) (*googleService, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &googleService{
		Provider: provider,
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

func (s *googleService) Service() string {
	return "google"
}

func (s *googleService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

func (s *googleService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.config.Exchange(ctx, code)
}

// VerifyIdentity verifies that an *oauth2.Token carries a valid *oidc.IDToken.
func (s *googleService) VerifyIdentity(ctx context.Context, token *oauth2.Token) (OAuth2User, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	idToken, err := s.Verifier(&oidc.Config{ClientID: s.config.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	var profile map[string]any
	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	var claims googleClaims
	if err := mapstructure.Decode(profile, &claims); err != nil {
		return OAuth2User{}, err
	}

	if claims.Email == "" {
		return OAuth2User{}, errors.New("id token has no email")
	}

	return OAuth2User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}
