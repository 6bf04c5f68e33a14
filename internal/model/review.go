package model

type SuggestCodeRequest struct {
	Code     string `json:"code" form:"code"`
	Language string `json:"language" form:"language"`
}

type SuggestCodeResponse struct {
	Suggestion string `json:"suggestion"`
	Language   string `json:"language"`
}
