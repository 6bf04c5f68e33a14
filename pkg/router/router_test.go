package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codehub/backend/config"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/logger"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	ID   int64  `uri:"id"`
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
}

type createdResponse struct{}

func (createdResponse) StatusCode() int { return http.StatusCreated }

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func newTestRouter() *Router {
	cfg := config.Default()
	cfg.Auth.TokenSecret = "secret"
	return New(nil, cfg, logger.NewNopLogger())
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "fail" {
		return nil, errorx.New(errorx.NotFound, "Not found %s", req.Name)
	}

	return &echoResponse{ID: req.ID, Name: req.Name, UserID: xcontext.RequestUserID(ctx)}, nil
}

func do(t *testing.T, r *Router, method, target, contentType, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}

func TestRouter_Bind(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo/:id", echo)
	POST(r, "/echo/:id", echo)

	testCases := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		wantStatus  int
		wantResp    echoResponse
	}{
		{
			name:       "get with query",
			method:     http.MethodGet,
			target:     "/echo/3?name=alice",
			wantStatus: http.StatusOK,
			wantResp:   echoResponse{ID: 3, Name: "alice"},
		},
		{
			name:        "post json",
			method:      http.MethodPost,
			target:      "/echo/4",
			contentType: "application/json",
			body:        `{"name":"bob"}`,
			wantStatus:  http.StatusOK,
			wantResp:    echoResponse{ID: 4, Name: "bob"},
		},
		{
			name:        "post form",
			method:      http.MethodPost,
			target:      "/echo/5",
			contentType: "application/x-www-form-urlencoded",
			body:        "name=carol",
			wantStatus:  http.StatusOK,
			wantResp:    echoResponse{ID: 5, Name: "carol"},
		},
		{
			name:       "post empty body",
			method:     http.MethodPost,
			target:     "/echo/6",
			wantStatus: http.StatusOK,
			wantResp:   echoResponse{ID: 6},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.target, tc.contentType, tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
			require.Equal(t, int64(0), env.Code)

			var got echoResponse
			require.NoError(t, json.Unmarshal(env.Data, &got))
			require.Equal(t, tc.wantResp, got)
		})
	}
}

func TestRouter_Errors(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo/:id", echo)
	POST(r, "/echo/:id", echo)

	w, env := do(t, r, http.MethodGet, "/echo/abc", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(errorx.BadRequest), env.Code)
	require.Equal(t, "Invalid request", env.Error)

	w, env = do(t, r, http.MethodPost, "/echo/1", "application/json", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request", env.Error)

	w, env = do(t, r, http.MethodGet, "/echo/1?name=fail", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, int64(errorx.NotFound), env.Code)
	require.Equal(t, "Not found fail", env.Error)
}

func TestRouter_UnknownError(t *testing.T) {
	r := newTestRouter()
	GET(r, "/boom", func(ctx context.Context, req *struct{}) (*struct{}, error) {
		return nil, context.Canceled
	})

	w, env := do(t, r, http.MethodGet, "/boom", "", "")
	require.Equal(t, errorx.Unknown.Code.HTTPStatus(), w.Code)
	require.Equal(t, errorx.Unknown.Message, env.Error)
}

func TestRouter_StatusResponse(t *testing.T) {
	r := newTestRouter()
	POST(r, "/create", func(ctx context.Context, req *struct{}) (*createdResponse, error) {
		return &createdResponse{}, nil
	})

	w, env := do(t, r, http.MethodPost, "/create", "", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, int64(0), env.Code)
}

func TestRouter_BranchMiddlewares(t *testing.T) {
	r := newTestRouter()

	closed := 0
	r.AddCloser(func(ctx context.Context) { closed++ })

	public := r.Branch()
	GET(public, "/public/:id", echo)

	authed := r.Branch()
	authed.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Token is missing")
		}
		return xcontext.WithRequestUserID(ctx, 42), nil
	})
	authed.After(func(ctx context.Context) (context.Context, error) {
		resp := xcontext.GetResponse(ctx).(*echoResponse)
		resp.Name = strings.ToUpper(resp.Name)
		return ctx, nil
	})
	GET(authed, "/private/:id", echo)

	w, env := do(t, r, http.MethodGet, "/public/1?name=x", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got echoResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, echoResponse{ID: 1, Name: "x"}, got)

	w, env = do(t, r, http.MethodGet, "/private/1?name=x", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Token is missing", env.Error)

	req := httptest.NewRequest(http.MethodGet, "/private/2?name=x", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, echoResponse{ID: 2, Name: "X", UserID: 42}, got)

	require.Equal(t, 3, closed)
}
