package xcontext

import (
	"context"
	"net/http"

	"github.com/codehub/backend/config"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/logger"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type (
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	userIDKey       struct{}
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	responseKey     struct{}
	errorKey        struct{}
)

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return getValue[*http.Request](ctx, httpRequestKey{})
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return getValue[http.ResponseWriter](ctx, httpWriterKey{})
}

func WithRequestUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the id of the authenticated user, or zero if the
// request is anonymous.
func RequestUserID(ctx context.Context) int64 {
	return getValue[int64](ctx, userIDKey{})
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return getValue[config.Configs](ctx, configsKey{})
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l := getValue[logger.Logger](ctx, loggerKey{})
	if l == nil {
		return logger.NewNopLogger()
	}

	return l
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return getValue[authenticator.TokenEngine](ctx, tokenEngineKey{})
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return getValue[sessions.Store](ctx, sessionStoreKey{})
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database bound to ctx. Inside a transaction started by
// WithDBTransaction it returns the transaction.
func DB(ctx context.Context) *gorm.DB {
	return getValue[*gorm.DB](ctx, dbKey{})
}

func WithDBTransaction(ctx context.Context) context.Context {
	return WithDB(ctx, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	return WithDB(ctx, DB(ctx).Commit())
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	return WithDB(ctx, DB(ctx).Rollback())
}

// WithResponse stores the object rendered to the client. After middlewares
// may replace it, a nil response renders nothing.
func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func GetResponse(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func GetError(ctx context.Context) error {
	return getValue[error](ctx, errorKey{})
}

func getValue[T any](ctx context.Context, key any) T {
	var zero T
	value, ok := ctx.Value(key).(T)
	if !ok {
		return zero
	}

	return value
}
