package migration

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
)

// AutoMigrate creates or updates every table with its indexes, including the
// composite unique indexes on likes and follows.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.Like{},
		&entity.Comment{},
		&entity.Repo{},
		&entity.Follow{},
	)
}
