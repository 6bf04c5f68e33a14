package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

// StatusResponse is implemented by responses rendered with a status other
// than 200 OK.
type StatusResponse interface {
	StatusCode() int
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) (int, response) {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return errx.Code.HTTPStatus(), response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return errorx.Unknown.Code.HTTPStatus(), response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func render(ctx context.Context, c *gin.Context) {
	if err := xcontext.GetError(ctx); err != nil {
		status, resp := newErrorResponse(err)
		c.JSON(status, resp)
		return
	}

	resp := xcontext.GetResponse(ctx)
	if resp == nil {
		return
	}

	status := http.StatusOK
	if s, ok := resp.(StatusResponse); ok {
		status = s.StatusCode()
	}

	c.JSON(status, newResponse(resp))
}
