package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/codehub/backend/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPIURL = "https://api.github.com"

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

type githubService struct {
	config oauth2.Config
	apiURL string
}

func NewGitHubService(cfg config.OAuth2Config) *githubService {
	return &githubService{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user:email"},
		},
		apiURL: githubAPIURL,
	}
}

func (s *githubService) Service() string {
	return "github"
}

func (s *githubService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

func (s *githubService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.config.Exchange(ctx, code)
}

func (s *githubService) VerifyIdentity(ctx context.Context, token *oauth2.Token) (OAuth2User, error) {
	client := s.config.Client(ctx, token)

	var profile githubUser
	if err := s.get(ctx, client, "/user", &profile); err != nil {
		return OAuth2User{}, err
	}

	var emails []githubEmail
	if err := s.get(ctx, client, "/user/emails", &emails); err != nil {
		return OAuth2User{}, err
	}

	email := profile.Email
	for _, e := range emails {
		if e.Primary {
			email = e.Email
			break
		}
	}

	if email == "" {
		return OAuth2User{}, fmt.Errorf("github account %s has no email", profile.Login)
	}

	return OAuth2User{
		ID:       strconv.FormatInt(profile.ID, 10),
		Username: profile.Login,
		Name:     profile.Name,
		Email:    email,
	}, nil
}

func (s *githubService) get(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github responded %s on %s", resp.Status, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
