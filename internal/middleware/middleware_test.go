package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/logger"
	"github.com/codehub/backend/pkg/router"
	"github.com/codehub/backend/pkg/testutil"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type whoamiResponse struct {
	UserID int64 `json:"user_id"`
}

func whoami(ctx context.Context, req *struct{}) (*whoamiResponse, error) {
	return &whoamiResponse{UserID: xcontext.RequestUserID(ctx)}, nil
}

func newTestRouter(ctx context.Context) *router.Router {
	r := router.New(xcontext.DB(ctx), xcontext.Configs(ctx), logger.NewNopLogger())
	r.AddCloser(Logger())
	return r
}

func generateToken(t *testing.T, ctx context.Context, id int64, username string) string {
	token, err := xcontext.TokenEngine(ctx).Generate(
		username, time.Minute, model.AccessToken{ID: id, Username: username})
	require.NoError(t, err)
	return token
}

func TestAuthVerifier(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	r := newTestRouter(ctx)
	authRouter := r.Branch()
	authRouter.Before(NewAuthVerifier(repository.NewUserRepository()).Middleware())
	router.GET(authRouter, "/whoami", whoami)

	validToken := generateToken(t, ctx, testutil.User2.ID, testutil.User2.Username)

	testCases := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "You need to authenticate before",
		},
		{
			name:       "malformed token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid access token",
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "You need to authenticate before",
		},
		{
			name:       "unknown user",
			header:     "Bearer " + generateToken(t, ctx, 99, "ghost"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid access token",
		},
		{
			name:       "bearer token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":2`,
		},
		{
			name:       "cookie token",
			cookie:     validToken,
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":2`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tc.cookie})
			}

			w := httptest.NewRecorder()
			r.Handler().ServeHTTP(w, req)

			require.Equal(t, tc.wantStatus, w.Code)
			require.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestHandleSetAccessToken(t *testing.T) {
	ctx := testutil.MockContext()

	r := newTestRouter(ctx)
	r.After(HandleSetAccessToken())
	router.POST(r, "/login", func(ctx context.Context, req *struct{}) (*model.LoginResponse, error) {
		return &model.LoginResponse{AccessToken: "token-value"}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"access_token":"token-value"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "access_token", cookies[0].Name)
	require.Equal(t, "token-value", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestHandleSaveSessionAndRedirect(t *testing.T) {
	ctx := testutil.MockContext()

	r := newTestRouter(ctx)
	r.After(HandleSaveSession())
	r.After(HandleRedirect())
	router.GET(r, "/login/:provider", func(ctx context.Context, req *model.OAuth2LoginRequest) (*model.OAuth2LoginResponse, error) {
		return &model.OAuth2LoginResponse{
			RedirectURL: "https://provider.example/authorize?state=abc",
			State:       "abc",
		}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/github", nil))

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "https://provider.example/authorize?state=abc", w.Header().Get("Location"))
	require.False(t, strings.Contains(w.Body.String(), `"code"`))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == xcontext.Configs(ctx).Session.Name {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	// The saved state is readable by the following request.
	req := httptest.NewRequest(http.MethodGet, "/authorize/github", nil)
	req.AddCookie(sessionCookie)
	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	require.NoError(t, err)
	require.Equal(t, "abc", session.Values["state"])
}
