package model

type SearchRequest struct {
	Q string `json:"-" form:"q"`
}

type SearchResponse struct {
	Query        string `json:"query"`
	Users        []User `json:"users"`
	Posts        []Post `json:"posts"`
	Repositories []Repo `json:"repositories"`
}
