package testutil

import (
	"context"

	"github.com/codehub/backend/pkg/authenticator"
	"golang.org/x/oauth2"
)

type mockOAuth2 struct {
	Name               string
	AuthCodeURLFunc    func(state string) string
	ExchangeCodeFunc   func(ctx context.Context, code string) (*oauth2.Token, error)
	VerifyIdentityFunc func(ctx context.Context, token *oauth2.Token) (authenticator.OAuth2User, error)
}

func NewMockOAuth2(name string) *mockOAuth2 {
	return &mockOAuth2{Name: name}
}

func (m *mockOAuth2) Service() string {
	return m.Name
}

func (m *mockOAuth2) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}

	return "https://" + m.Name + ".example.com/authorize?state=" + state
}

func (m *mockOAuth2) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code)
	}

	return &oauth2.Token{AccessToken: code}, nil
}

func (m *mockOAuth2) VerifyIdentity(ctx context.Context, token *oauth2.Token) (authenticator.OAuth2User, error) {
	if m.VerifyIdentityFunc != nil {
		return m.VerifyIdentityFunc(ctx, token)
	}

	return authenticator.OAuth2User{}, nil
}
