package model

import "net/http"

type GetProfileRequest struct {
	UserID int64 `json:"-" uri:"id"`
}

type GetProfileResponse struct {
	User           User   `json:"user"`
	Posts          []Post `json:"posts"`
	IsFollowing    bool   `json:"is_following"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

type FollowRequest struct {
	UserID int64 `json:"-" uri:"id"`
}

type FollowResponse struct {
	Message string `json:"message"`
}

func (r FollowResponse) StatusCode() int {
	return http.StatusCreated
}

type UnfollowRequest struct {
	UserID int64 `json:"-" uri:"id"`
}

type UnfollowResponse struct {
	Message string `json:"message"`
}
