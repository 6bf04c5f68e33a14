package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/codehub/backend/config"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/logger"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. It returns the context
// used by the following steps of the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs when the response has been rendered. It cannot fail.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		engine:       engine,
		db:           db,
		cfg:          cfg,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch returns a router sharing the routes of r. Middlewares added to the
// branch do not affect r.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

// Before registers a middleware running before the handler of every route
// registered afterwards.
func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

// After registers a middleware running after a successful handler of every
// route registered afterwards.
func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r.Branch(), http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r.Branch(), http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := r.newContext(c)
		ctx = serve(ctx, c, r, method, handler)
		render(ctx, c)

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}

func (r *Router) newContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	ctx = xcontext.WithHTTPRequest(ctx, c.Request)
	ctx = xcontext.WithHTTPWriter(ctx, c.Writer)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	if r.db != nil {
		ctx = xcontext.WithDB(ctx, r.db.WithContext(c.Request.Context()))
	}
	return ctx
}

func serve[Request, Response any](
	ctx context.Context, c *gin.Context, r *Router, method string, handler HandlerFunc[Request, Response],
) context.Context {
	for _, m := range r.befores {
		newCtx, err := m(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}
		ctx = newCtx
	}

	var req Request
	if err := bind(c, method, &req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	if resp != nil {
		ctx = xcontext.WithResponse(ctx, resp)
	}

	for _, m := range r.afters {
		newCtx, err := m(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}
		ctx = newCtx
	}

	return ctx
}

// bind fills req from the uri params, then from the query of GET requests or
// the body of POST requests. An empty POST body is accepted.
func bind(c *gin.Context, method string, req any) error {
	if err := c.ShouldBindUri(req); err != nil {
		return err
	}

	switch method {
	case http.MethodGet:
		return c.ShouldBindQuery(req)

	case http.MethodPost:
		switch c.ContentType() {
		case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
			return c.ShouldBindWith(req, binding.Form)
		}

		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		return nil
	}

	return errors.New("unsupported method")
}
