package authenticator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codehub/backend/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newGitHubAPI(emails string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer foo" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "login": "octocat", "name": "Octo Cat", "email": "public@x.com"}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(emails))
	})

	return httptest.NewServer(mux)
}

func TestGitHubService_VerifyIdentity_PrimaryEmail(t *testing.T) {
	api := newGitHubAPI(`[
		{"email": "other@x.com", "primary": false, "verified": true},
		{"email": "primary@x.com", "primary": true, "verified": true}
	]`)
	defer api.Close()

	service := NewGitHubService(config.OAuth2Config{ClientID: "id", ClientSecret: "secret"})
	service.apiURL = api.URL

	user, err := service.VerifyIdentity(context.Background(), &oauth2.Token{AccessToken: "foo"})
	require.NoError(t, err)
	require.Equal(t, "42", user.ID)
	require.Equal(t, "octocat", user.Username)
	require.Equal(t, "primary@x.com", user.Email)
}

func TestGitHubService_VerifyIdentity_FallbackEmail(t *testing.T) {
	api := newGitHubAPI(`[]`)
	defer api.Close()

	service := NewGitHubService(config.OAuth2Config{ClientID: "id", ClientSecret: "secret"})
	service.apiURL = api.URL

	user, err := service.VerifyIdentity(context.Background(), &oauth2.Token{AccessToken: "foo"})
	require.NoError(t, err)
	require.Equal(t, "public@x.com", user.Email)
}
