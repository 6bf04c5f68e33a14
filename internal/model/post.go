package model

import "net/http"

type CreatePostRequest struct {
	Content     string `json:"content" form:"content"`
	CodeSnippet string `json:"code_snippet" form:"code_snippet"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

func (r CreatePostResponse) StatusCode() int {
	return http.StatusCreated
}

type GetFeedRequest struct{}

type GetFeedResponse struct {
	Posts []FeedPost `json:"posts"`
}

type ToggleLikeRequest struct {
	PostID int64 `json:"-" uri:"id"`
}

type ToggleLikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

func (r ToggleLikeResponse) StatusCode() int {
	if r.Liked {
		return http.StatusCreated
	}

	return http.StatusOK
}

type AddCommentRequest struct {
	PostID  int64  `json:"-" uri:"id"`
	Content string `json:"content" form:"content"`
}

type AddCommentResponse struct {
	Message string  `json:"message"`
	Comment Comment `json:"comment"`
}

func (r AddCommentResponse) StatusCode() int {
	return http.StatusCreated
}
