package repository

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	GetSuggestions(ctx context.Context, excludeIDs []int64, limit int) ([]entity.User, error)
	Search(ctx context.Context, q string) ([]entity.User, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

// Create inserts the user. It returns gorm.ErrDuplicatedKey if the username
// or the email is already taken.
func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	tx := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrDuplicatedKey
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("username=?", username).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("email=?", email).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) ExistsUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("username=?", username).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetSuggestions returns users not in excludeIDs in creation order.
func (r *userRepository) GetSuggestions(ctx context.Context, excludeIDs []int64, limit int) ([]entity.User, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).Order("id ASC").Limit(limit)
	if len(excludeIDs) > 0 {
		tx = tx.Where("id NOT IN (?)", excludeIDs)
	}

	var result []entity.User
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) Search(ctx context.Context, q string) ([]entity.User, error) {
	cond, args := likeAny(containsPattern(q), "username", "bio", "skills")

	var result []entity.User
	if err := xcontext.DB(ctx).Where(cond, args...).Order("id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
