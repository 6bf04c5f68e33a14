package domain

import (
	"context"
	"errors"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetProfile(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
}

type userDomain struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
) *userDomain {
	return &userDomain{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

func (d *userDomain) GetProfile(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetByUserIDs(ctx, []int64{user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts of user: %v", err)
		return nil, errorx.Unknown
	}

	isFollowing, err := d.followRepo.Exists(ctx, xcontext.RequestUserID(ctx), user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check follow edge: %v", err)
		return nil, errorx.Unknown
	}

	followers, err := d.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	following, err := d.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetProfileResponse{
		User:           model.ConvertUser(user),
		Posts:          model.ConvertPosts(posts),
		IsFollowing:    isFollowing,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func (d *userDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == req.UserID {
		return nil, errorx.New(errorx.AlreadyExists, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.followRepo.Create(ctx, requestUserID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow edge: %v", err)
		return nil, errorx.Unknown
	}

	if !created {
		return nil, errorx.New(errorx.AlreadyExists, "Already following this user")
	}

	return &model.FollowResponse{Message: "User followed successfully"}, nil
}

func (d *userDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	deleted, err := d.followRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow edge: %v", err)
		return nil, errorx.Unknown
	}

	if !deleted {
		return nil, errorx.New(errorx.BadRequest, "Not following this user")
	}

	return &model.UnfollowResponse{Message: "User unfollowed successfully"}, nil
}
