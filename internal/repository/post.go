package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	GetByUserIDs(ctx context.Context, userIDs []int64) ([]entity.Post, error)
	GetRecentByUserID(ctx context.Context, userID int64, limit int) ([]entity.Post, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Search(ctx context.Context, q string) ([]entity.Post, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Preload("User").Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByUserIDs returns every post owned by one of userIDs, newest first. Ties
// on created_at are broken by the newer id.
func (r *postRepository) GetByUserIDs(ctx context.Context, userIDs []int64) ([]entity.Post, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("User").
		Where("user_id IN (?)", userIDs).
		Order("created_at DESC").Order("id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetRecentByUserID(ctx context.Context, userID int64, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("User").
		Where("user_id=?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Post{}).Where("user_id=?", userID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *postRepository) Search(ctx context.Context, q string) ([]entity.Post, error) {
	cond, args := likeAny(containsPattern(q), "content", "code_snippet")

	var result []entity.Post
	err := xcontext.DB(ctx).Preload("User").Where(cond, args...).Order("id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
