package model

import (
	"time"

	"github.com/codehub/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

// CommentTimeLayout renders comment timestamps as dd/mm/yyyy HH:MM.
const CommentTimeLayout string = "02/01/2006 15:04"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:             user.ID,
		Username:       user.Username,
		Bio:            user.Bio,
		Skills:         user.Skills,
		GitHubUsername: user.GitHubUsername.String,
		CreatedAt:      user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertUsers(users []entity.User) []User {
	result := []User{}
	for i := range users {
		result = append(result, ConvertUser(&users[i]))
	}
	return result
}

func ConvertAuthor(user *entity.User) Author {
	if user == nil {
		return Author{}
	}

	return Author{ID: user.ID, Username: user.Username}
}

func ConvertPost(post *entity.Post) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:          post.ID,
		Content:     post.Content,
		CodeSnippet: post.CodeSnippet.String,
		Author:      ConvertAuthor(&post.User),
		CreatedAt:   post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPosts(posts []entity.Post) []Post {
	result := []Post{}
	for i := range posts {
		result = append(result, ConvertPost(&posts[i]))
	}
	return result
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Content:   comment.Content,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		CreatedAt: comment.CreatedAt.Format(CommentTimeLayout),
	}
}

func ConvertRepo(repo *entity.Repo) Repo {
	if repo == nil {
		return Repo{}
	}

	return Repo{
		ID:          repo.ID,
		Name:        repo.Name,
		Description: repo.Description,
		Code:        repo.Code,
		Language:    repo.Language,
		Forks:       repo.Forks,
		Author:      ConvertAuthor(&repo.User),
		CreatedAt:   repo.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertRepos(repos []entity.Repo) []Repo {
	result := []Repo{}
	for i := range repos {
		result = append(result, ConvertRepo(&repos[i]))
	}
	return result
}
