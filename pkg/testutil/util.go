package testutil

import (
	"context"
	"time"

	"github.com/codehub/backend/config"
	"github.com/codehub/backend/migration"
	"github.com/codehub/backend/pkg/authenticator"
	"github.com/codehub/backend/pkg/logger"
	"github.com/codehub/backend/pkg/xcontext"
	"github.com/gorilla/sessions"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context carrying an empty in-memory database with the
// full schema, default configs, a nop logger, a token engine and a cookie
// session store.
func MockContext() context.Context {
	db := openDatabase(":memory:")

	// Every connection to :memory: opens a distinct database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	return newContext(db)
}

// MockFileContext is like MockContext but the database lives in the file at
// path, so several connections can write to it at the same time.
func MockFileContext(path string) context.Context {
	return newContext(openDatabase("file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"))
}

func openDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func newContext(db *gorm.DB) context.Context {
	cfg := config.Default()
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken = config.TokenConfigs{
		Name:       "access_token",
		Expiration: time.Minute,
	}
	cfg.Session.Secret = "session-secret"

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
