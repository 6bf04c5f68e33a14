package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByPostIDs(ctx context.Context, postIDs []int64) ([]entity.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetByPostIDs returns the comments of the given posts, oldest first, with
// their authors loaded.
func (r *commentRepository) GetByPostIDs(ctx context.Context, postIDs []int64) ([]entity.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("User").
		Where("post_id IN (?)", postIDs).
		Order("created_at ASC").Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
