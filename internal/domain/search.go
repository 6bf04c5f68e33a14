package domain

import (
	"context"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

type SearchDomain interface {
	Search(context.Context, *model.SearchRequest) (*model.SearchResponse, error)
}

type searchDomain struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	repoRepo repository.RepoRepository
}

func NewSearchDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	repoRepo repository.RepoRepository,
) *searchDomain {
	return &searchDomain{
		userRepo: userRepo,
		postRepo: postRepo,
		repoRepo: repoRepo,
	}
}

// Search matches the query as a case-insensitive substring of users, posts
// and repositories. The three categories are queried concurrently.
func (d *searchDomain) Search(
	ctx context.Context, req *model.SearchRequest,
) (*model.SearchResponse, error) {
	resp := &model.SearchResponse{
		Query:        req.Q,
		Users:        []model.User{},
		Posts:        []model.Post{},
		Repositories: []model.Repo{},
	}

	q := req.Q
	if q == "" {
		return resp, nil
	}

	var users []entity.User
	var posts []entity.Post
	var repos []entity.Repo

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		users, err = d.userRepo.Search(egCtx, q)
		return err
	})

	eg.Go(func() error {
		var err error
		posts, err = d.postRepo.Search(egCtx, q)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = d.repoRepo.Search(egCtx, q)
		return err
	})

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search: %v", err)
		return nil, errorx.Unknown
	}

	resp.Users = model.ConvertUsers(users)
	resp.Posts = model.ConvertPosts(posts)
	resp.Repositories = model.ConvertRepos(repos)
	return resp, nil
}
