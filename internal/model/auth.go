package model

import (
	"context"
	"net/http"
	"time"

	"github.com/codehub/backend/pkg/xcontext"
)

// Register
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

func (r RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

// Login
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (r LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{accessTokenCookie(ctx, r.AccessToken)}
}

func accessTokenCookie(ctx context.Context, token string) http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return http.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.Expiration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// OAuth2 Login
type OAuth2LoginRequest struct {
	Provider string `json:"-" uri:"provider"`
}

type OAuth2LoginResponse struct {
	RedirectURL string `json:"-"`
	State       string `json:"-"`
}

func (r OAuth2LoginResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r OAuth2LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"state": r.State}
}

// OAuth2 Callback
type OAuth2CallbackRequest struct {
	Provider string `json:"-" uri:"provider"`
	Code     string `json:"-" form:"code"`
	State    string `json:"-" form:"state"`
}

type OAuth2CallbackResponse struct {
	RedirectURL string `json:"-"`
	AccessToken string `json:"-"`
}

func (r OAuth2CallbackResponse) RedirectInfo() (int, string) {
	return http.StatusTemporaryRedirect, r.RedirectURL
}

func (r OAuth2CallbackResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return []http.Cookie{accessTokenCookie(ctx, r.AccessToken)}
}
