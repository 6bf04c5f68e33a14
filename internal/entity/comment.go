package entity

type Comment struct {
	Base
	Content string `gorm:"type:text;not null"`
	UserID  int64  `gorm:"not null"`
	User    User   `gorm:"foreignKey:UserID"`
	PostID  int64  `gorm:"not null;index"`
	Post    Post   `gorm:"foreignKey:PostID"`
}
