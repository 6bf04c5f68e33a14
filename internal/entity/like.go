package entity

type Like struct {
	Base
	UserID int64 `gorm:"not null;uniqueIndex:idx_like_user_post"`
	User   User  `gorm:"foreignKey:UserID"`
	PostID int64 `gorm:"not null;uniqueIndex:idx_like_user_post;index"`
	Post   Post  `gorm:"foreignKey:PostID"`
}
