package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/testutil"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func Test_authDomain_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.RegisterRequest
		wantErr error
	}{
		{
			name: "happy case",
			req:  &model.RegisterRequest{Username: "dave", Email: "dave@example.com", Password: "pw"},
		},
		{
			name:    "missing password",
			req:     &model.RegisterRequest{Username: "dave", Email: "dave@example.com"},
			wantErr: errorx.New(errorx.BadRequest, "Missing fields"),
		},
		{
			name:    "blank username",
			req:     &model.RegisterRequest{Username: "  ", Email: "dave@example.com", Password: "pw"},
			wantErr: errorx.New(errorx.BadRequest, "Missing fields"),
		},
		{
			name:    "duplicated username",
			req:     &model.RegisterRequest{Username: testutil.User1.Username, Email: "new@example.com", Password: "pw"},
			wantErr: errorx.New(errorx.AlreadyExists, "User already exists"),
		},
		{
			name:    "duplicated email",
			req:     &model.RegisterRequest{Username: "new", Email: testutil.User1.Email, Password: "pw"},
			wantErr: errorx.New(errorx.AlreadyExists, "User already exists"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)
			domain := NewAuthDomain(repository.NewUserRepository(), nil)

			got, err := domain.Register(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				var count int64
				require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error)
				require.Equal(t, int64(3), count)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "User created successfully", got.Message)

			user, err := repository.NewUserRepository().GetByUsername(ctx, tt.req.Username)
			require.NoError(t, err)
			require.NotEqual(t, tt.req.Password, user.Password)
		})
	}
}

func Test_authDomain_Register_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewUserRepository(), nil)
	req := &model.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw1"}

	_, err := domain.Register(ctx, req)
	require.NoError(t, err)

	_, err = domain.Register(ctx, req)
	require.ErrorIs(t, err, errorx.New(errorx.AlreadyExists, "User already exists"))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Where("username=?", "alice").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, nil)

	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Username: "oauth-only",
		Email:    "oauth@example.com",
		Password: entity.OAuthPassword,
	}))

	tests := []struct {
		name    string
		req     *model.LoginRequest
		wantErr error
	}{
		{
			name: "happy case",
			req:  &model.LoginRequest{Username: testutil.User1.Username, Password: testutil.FixturePassword},
		},
		{
			name:    "wrong password",
			req:     &model.LoginRequest{Username: testutil.User1.Username, Password: "wrong"},
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid credentials"),
		},
		{
			name:    "unknown user",
			req:     &model.LoginRequest{Username: "nobody", Password: testutil.FixturePassword},
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid credentials"),
		},
		{
			name:    "oauth account",
			req:     &model.LoginRequest{Username: "oauth-only", Password: entity.OAuthPassword},
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid credentials"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.Login(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			var info model.AccessToken
			require.NoError(t, xcontext.TokenEngine(ctx).Verify(got.AccessToken, &info))
			require.Equal(t, testutil.User1.ID, info.ID)
			require.Equal(t, testutil.User1.Username, info.Username)
		})
	}
}

func Test_authDomain_OAuth2Login(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(),
		[]authenticator.IOAuth2Service{testutil.NewMockOAuth2("github")},
	)

	resp, err := domain.OAuth2Login(ctx, &model.OAuth2LoginRequest{Provider: "github"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.State)
	require.Contains(t, resp.RedirectURL, resp.State)
	require.Equal(t, map[string]any{"state": resp.State}, resp.SessionInfo())

	_, err = domain.OAuth2Login(ctx, &model.OAuth2LoginRequest{Provider: "google"})
	require.ErrorIs(t, err, errorx.New(errorx.Internal, "Google OAuth not configured"))

	_, err = domain.OAuth2Login(ctx, &model.OAuth2LoginRequest{Provider: "gitlab"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

// withOAuth2State returns a context whose request carries a session cookie
// holding the state.
func withOAuth2State(t *testing.T, ctx context.Context, state string) context.Context {
	sessionName := xcontext.Configs(ctx).Session.Name

	loginReq := httptest.NewRequest(http.MethodGet, "/login/github", nil)
	rec := httptest.NewRecorder()
	session, err := xcontext.SessionStore(ctx).Get(loginReq, sessionName)
	require.NoError(t, err)
	session.Values["state"] = state
	require.NoError(t, session.Save(loginReq, rec))

	callbackReq := httptest.NewRequest(http.MethodGet, "/authorize/github", nil)
	for _, c := range rec.Result().Cookies() {
		callbackReq.AddCookie(c)
	}

	return xcontext.WithHTTPRequest(ctx, callbackReq)
}

func Test_authDomain_OAuth2Callback(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = withOAuth2State(t, ctx, "state-1")

	github := testutil.NewMockOAuth2("github")
	github.ExchangeCodeFunc = func(ctx context.Context, code string) (*oauth2.Token, error) {
		require.Equal(t, "code-1", code)
		return &oauth2.Token{AccessToken: "foo"}, nil
	}
	github.VerifyIdentityFunc = func(ctx context.Context, token *oauth2.Token) (authenticator.OAuth2User, error) {
		// The login collides with a fixture user.
		return authenticator.OAuth2User{
			ID:       "42",
			Username: testutil.User1.Username,
			Email:    "alice@github.example.com",
		}, nil
	}

	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, []authenticator.IOAuth2Service{github})
	req := &model.OAuth2CallbackRequest{Provider: "github", Code: "code-1", State: "state-1"}

	resp, err := domain.OAuth2Callback(ctx, req)
	require.NoError(t, err)

	code, redirectURL := resp.RedirectInfo()
	require.Equal(t, http.StatusTemporaryRedirect, code)
	require.True(t, strings.HasPrefix(redirectURL, "/feed?token="))

	u, err := url.Parse(redirectURL)
	require.NoError(t, err)
	require.Equal(t, resp.AccessToken, u.Query().Get("token"))

	user, err := userRepo.GetByEmail(ctx, "alice@github.example.com")
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Username+"1", user.Username)
	require.Equal(t, entity.OAuthPassword, user.Password)
	require.Equal(t, testutil.User1.Username, user.GitHubUsername.String)

	var info model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &info))
	require.Equal(t, user.ID, info.ID)

	// The second login reuses the account found by email.
	_, err = domain.OAuth2Callback(ctx, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).
		Where("email=?", "alice@github.example.com").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func Test_authDomain_OAuth2Callback_GoogleUsername(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = withOAuth2State(t, ctx, "state-1")

	google := testutil.NewMockOAuth2("google")
	google.VerifyIdentityFunc = func(ctx context.Context, token *oauth2.Token) (authenticator.OAuth2User, error) {
		return authenticator.OAuth2User{ID: "sub", Name: "Jane Doe", Email: "jane@example.com"}, nil
	}

	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, []authenticator.IOAuth2Service{google})

	_, err := domain.OAuth2Callback(ctx, &model.OAuth2CallbackRequest{
		Provider: "google", Code: "code", State: "state-1",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "janedoe", user.Username)
	require.False(t, user.GitHubUsername.Valid)
}

func Test_authDomain_OAuth2Callback_InvalidState(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = withOAuth2State(t, ctx, "state-1")

	github := testutil.NewMockOAuth2("github")
	domain := NewAuthDomain(repository.NewUserRepository(), []authenticator.IOAuth2Service{github})

	_, err := domain.OAuth2Callback(ctx, &model.OAuth2CallbackRequest{
		Provider: "github", Code: "code", State: "other-state",
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Invalid state"))
}
