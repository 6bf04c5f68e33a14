package model

type AccessToken struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	GitHubUsername string `json:"github_username,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// Author is the short form of a user attached to the content it owns.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Post struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	CodeSnippet string `json:"code_snippet,omitempty"`
	Author      Author `json:"author"`
	CreatedAt   string `json:"created_at"`
}

// FeedPost is a post decorated for a given viewer.
type FeedPost struct {
	Post
	LikeCount     int64     `json:"like_count"`
	LikedByViewer bool      `json:"liked_by_viewer"`
	Comments      []Comment `json:"comments"`
}

type Comment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Forks       int    `json:"forks"`
	Author      Author `json:"author"`
	CreatedAt   string `json:"created_at"`
}
