package entity

// Repo is a code repository published by a user.
type Repo struct {
	Base
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Code        string `gorm:"type:text"`
	Language    string `gorm:"size:50"`
	UserID      int64  `gorm:"index;not null"`
	User        User   `gorm:"foreignKey:UserID"`

	// Forks is reserved, nothing increases it yet.
	Forks int `gorm:"default:0"`
}

func (Repo) TableName() string {
	return "repositories"
}
