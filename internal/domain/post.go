package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/internal/repository"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	ToggleLike(context.Context, *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error)
	AddComment(context.Context, *model.AddCommentRequest) (*model.AddCommentResponse, error)
}

type postDomain struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

func NewPostDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
) *postDomain {
	return &postDomain{
		userRepo:    userRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Content is required")
	}

	post := &entity.Post{
		Content: req.Content,
		UserID:  xcontext.RequestUserID(ctx),
	}

	if req.CodeSnippet != "" {
		post.CodeSnippet = sql.NullString{Valid: true, String: req.CodeSnippet}
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{
		Message: "Post created successfully",
		Post:    model.ConvertPost(created),
	}, nil
}

// GetFeed returns every post of the request user and of the users they
// follow, newest first, decorated for the request user.
func (d *postDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	followedIDs, err := d.followRepo.GetFollowedIDs(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followed users: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetByUserIDs(ctx, append(followedIDs, requestUserID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed posts: %v", err)
		return nil, errorx.Unknown
	}

	postIDs := []int64{}
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	likeCounts, err := d.likeRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	likedIDs, err := d.likeRepo.GetLikedPostIDs(ctx, requestUserID, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked posts: %v", err)
		return nil, errorx.Unknown
	}

	liked := map[int64]bool{}
	for _, id := range likedIDs {
		liked[id] = true
	}

	comments, err := d.commentRepo.GetByPostIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	commentMap := map[int64][]model.Comment{}
	for i := range comments {
		c := &comments[i]
		commentMap[c.PostID] = append(commentMap[c.PostID], model.ConvertComment(c))
	}

	feed := []model.FeedPost{}
	for i := range posts {
		p := &posts[i]
		postComments := commentMap[p.ID]
		if postComments == nil {
			postComments = []model.Comment{}
		}

		feed = append(feed, model.FeedPost{
			Post:          model.ConvertPost(p),
			LikeCount:     likeCounts[p.ID],
			LikedByViewer: liked[p.ID],
			Comments:      postComments,
		})
	}

	return &model.GetFeedResponse{Posts: feed}, nil
}

// ToggleLike removes the like of the request user on the post, or adds one
// if there was none. The delete and the insert run in one transaction and
// their affected rows decide the outcome.
func (d *postDomain) ToggleLike(
	ctx context.Context, req *model.ToggleLikeRequest,
) (*model.ToggleLikeResponse, error) {
	if err := d.checkPostExists(ctx, req.PostID); err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	removed, err := d.likeRepo.Delete(ctx, requestUserID, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	if !removed {
		// A false result means a concurrent toggle inserted the same like,
		// the post is liked either way.
		if _, err := d.likeRepo.Create(ctx, requestUserID, req.PostID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
			return nil, errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	if err := xcontext.DB(ctx).Error; err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit like toggle: %v", err)
		return nil, errorx.Unknown
	}

	if removed {
		return &model.ToggleLikeResponse{Message: "Like removed", Liked: false}, nil
	}

	return &model.ToggleLikeResponse{Message: "Post liked", Liked: true}, nil
}

func (d *postDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	if err := d.checkPostExists(ctx, req.PostID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Comment content is required")
	}

	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Content: req.Content,
		UserID:  user.ID,
		PostID:  req.PostID,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	comment.User = *user
	return &model.AddCommentResponse{
		Message: "Comment added successfully",
		Comment: model.ConvertComment(comment),
	}, nil
}

func (d *postDomain) checkPostExists(ctx context.Context, postID int64) error {
	if _, err := d.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return errorx.Unknown
	}

	return nil
}
