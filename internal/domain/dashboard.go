package domain

import (
	"context"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
)

type DashboardDomain interface {
	Get(context.Context, *model.GetDashboardRequest) (*model.GetDashboardResponse, error)
}

type dashboardDomain struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
	repoRepo   repository.RepoRepository
}

func NewDashboardDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	repoRepo repository.RepoRepository,
) *dashboardDomain {
	return &dashboardDomain{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
		repoRepo:   repoRepo,
	}
}

// Get computes the counters of the request user. Each counter is an
// independent query, they are not read from a single snapshot.
func (d *dashboardDomain) Get(
	ctx context.Context, req *model.GetDashboardRequest,
) (*model.GetDashboardResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	cfg := xcontext.Configs(ctx).Dashboard

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	postCount, err := d.postRepo.CountByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	followerCount, err := d.followRepo.CountFollowers(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	likesReceived, err := d.likeRepo.CountReceivedByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count received likes: %v", err)
		return nil, errorx.Unknown
	}

	repoCount, err := d.repoRepo.CountByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count repositories: %v", err)
		return nil, errorx.Unknown
	}

	recentPosts, err := d.postRepo.GetRecentByUserID(ctx, requestUserID, cfg.RecentPostLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent posts: %v", err)
		return nil, errorx.Unknown
	}

	followedIDs, err := d.followRepo.GetFollowedIDs(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followed users: %v", err)
		return nil, errorx.Unknown
	}

	suggestions, err := d.userRepo.GetSuggestions(
		ctx, append(followedIDs, requestUserID), cfg.SuggestionLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get suggestions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDashboardResponse{
		User:          model.ConvertUser(user),
		PostCount:     postCount,
		FollowerCount: followerCount,
		LikesReceived: likesReceived,
		RepoCount:     repoCount,
		RecentPosts:   model.ConvertPosts(recentPosts),
		Suggestions:   model.ConvertUsers(suggestions),
	}, nil
}
