package authenticator

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuth2User is the identity confirmed by an oauth2 service.
type OAuth2User struct {
	ID       string
	Username string
	Name     string
	Email    string
}

type IOAuth2Service interface {
	// Service returns the name of this service, for example github.
	Service() string

	// AuthCodeURL returns the consent page url the client is redirected to.
	AuthCodeURL(state string) string

	// ExchangeCode converts an authorization code into a service token.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// VerifyIdentity returns the user owning the service token.
	VerifyIdentity(ctx context.Context, token *oauth2.Token) (OAuth2User, error)
}
