package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Create reports false if the user already liked the post.
	Create(ctx context.Context, userID, postID int64) (bool, error)
	// Delete reports false if the user did not like the post.
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	CountReceivedByUserID(ctx context.Context, userID int64) (int64, error)
	GetLikedPostIDs(ctx context.Context, userID int64, postIDs []int64) ([]int64, error)
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, userID, postID int64) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Like{UserID: userID, PostID: postID})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND post_id=?", userID, postID).
		Delete(&entity.Like{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

type likeCount struct {
	PostID int64
	Count  int64
}

// CountByPostIDs returns the number of likes of each post. Posts without likes
// are absent from the map.
func (r *likeRepository) CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	result := map[int64]int64{}
	if len(postIDs) == 0 {
		return result, nil
	}

	var counts []likeCount
	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN (?)", postIDs).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	for _, c := range counts {
		result[c.PostID] = c.Count
	}

	return result, nil
}

// CountReceivedByUserID counts the likes over every post owned by userID.
func (r *likeRepository) CountReceivedByUserID(ctx context.Context, userID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Joins("JOIN posts ON posts.id=likes.post_id").
		Where("posts.user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *likeRepository) GetLikedPostIDs(ctx context.Context, userID int64, postIDs []int64) ([]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Where("user_id=? AND post_id IN (?)", userID, postIDs).
		Pluck("post_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
