package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
)

type RepoRepository interface {
	Create(ctx context.Context, data *entity.Repo) error
	GetByUserID(ctx context.Context, userID int64) ([]entity.Repo, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Search(ctx context.Context, q string) ([]entity.Repo, error)
}

type repoRepository struct{}

func NewRepoRepository() *repoRepository {
	return &repoRepository{}
}

func (r *repoRepository) Create(ctx context.Context, data *entity.Repo) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *repoRepository) GetByUserID(ctx context.Context, userID int64) ([]entity.Repo, error) {
	var result []entity.Repo
	err := xcontext.DB(ctx).
		Preload("User").
		Where("user_id=?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *repoRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Repo{}).Where("user_id=?", userID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *repoRepository) Search(ctx context.Context, q string) ([]entity.Repo, error) {
	cond, args := likeAny(containsPattern(q), "name", "description", "code")

	var result []entity.Repo
	err := xcontext.DB(ctx).Preload("User").Where(cond, args...).Order("id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
