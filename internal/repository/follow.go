package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	// Create reports false if the edge already exists.
	Create(ctx context.Context, followerID, followedID int64) (bool, error)
	// Delete reports false if there was no edge to remove.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Follow{FollowerID: followerID, FollowedID: followedID})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("follower_id=? AND followed_id=?", followerID, followedID).
		Delete(&entity.Follow{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("follower_id=? AND followed_id=?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("followed_id=?", userID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("follower_id=?", userID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followRepository) GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("follower_id=?", followerID).
		Order("followed_id ASC").
		Pluck("followed_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
