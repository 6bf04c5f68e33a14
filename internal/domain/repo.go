package domain

import (
	"context"
	"strings"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
)

type RepoDomain interface {
	Create(context.Context, *model.CreateRepoRequest) (*model.CreateRepoResponse, error)
	GetMyList(context.Context, *model.GetMyRepoListRequest) (*model.GetMyRepoListResponse, error)
}

type repoDomain struct {
	userRepo repository.UserRepository
	repoRepo repository.RepoRepository
}

func NewRepoDomain(userRepo repository.UserRepository, repoRepo repository.RepoRepository) *repoDomain {
	return &repoDomain{
		userRepo: userRepo,
		repoRepo: repoRepo,
	}
}

func (d *repoDomain) Create(
	ctx context.Context, req *model.CreateRepoRequest,
) (*model.CreateRepoResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	repo := &entity.Repo{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		Language:    req.Language,
		UserID:      user.ID,
	}

	if err := d.repoRepo.Create(ctx, repo); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repository: %v", err)
		return nil, errorx.Unknown
	}

	repo.User = *user
	return &model.CreateRepoResponse{
		Message:    "Repository created successfully",
		Repository: model.ConvertRepo(repo),
	}, nil
}

func (d *repoDomain) GetMyList(
	ctx context.Context, req *model.GetMyRepoListRequest,
) (*model.GetMyRepoListResponse, error) {
	repos, err := d.repoRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get repositories: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyRepoListResponse{Repositories: model.ConvertRepos(repos)}, nil
}
