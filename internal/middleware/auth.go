package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/router"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AuthVerifier resolves the access token of a request to a registered user.
type AuthVerifier struct {
	userRepo repository.UserRepository
}

func NewAuthVerifier(userRepo repository.UserRepository) *AuthVerifier {
	return &AuthVerifier{userRepo: userRepo}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		user, err := a.userRepo.GetByUsername(ctx, info.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
			}

			xcontext.Logger(ctx).Errorf("Cannot get user of access token: %v", err)
			return nil, errorx.Unknown
		}

		return xcontext.WithRequestUserID(ctx, user.ID), nil
	}
}

// getAccessToken reads the bearer token of the Authorization header, falling
// back to the access token cookie.
func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
