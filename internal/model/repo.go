package model

import "net/http"

type CreateRepoRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Code        string `json:"code" form:"code"`
	Language    string `json:"language" form:"language"`
}

type CreateRepoResponse struct {
	Message    string `json:"message"`
	Repository Repo   `json:"repository"`
}

func (r CreateRepoResponse) StatusCode() int {
	return http.StatusCreated
}

type GetMyRepoListRequest struct{}

type GetMyRepoListResponse struct {
	Repositories []Repo `json:"repositories"`
}
