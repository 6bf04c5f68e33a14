package model

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	User          User   `json:"user"`
	PostCount     int64  `json:"post_count"`
	FollowerCount int64  `json:"follower_count"`
	LikesReceived int64  `json:"likes_received"`
	RepoCount     int64  `json:"repo_count"`
	RecentPosts   []Post `json:"recent_posts"`
	Suggestions   []User `json:"suggestions"`
}
