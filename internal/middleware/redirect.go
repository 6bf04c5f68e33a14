package middleware

import (
	"context"
	"net/http"

	"github.com/codehub/backend/pkg/router"
	"github.com/codehub/backend/pkg/xcontext"
)

type RedirectResponse interface {
	RedirectInfo() (int, string)
}

func HandleRedirect() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		redirectResp, ok := xcontext.GetResponse(ctx).(RedirectResponse)
		if !ok {
			return ctx, nil
		}

		code, uri := redirectResp.RedirectInfo()
		http.Redirect(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), uri, code)

		// The redirect is the whole response.
		return xcontext.WithResponse(ctx, nil), nil
	}
}
