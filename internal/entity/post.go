package entity

import "database/sql"

type Post struct {
	Base
	Content     string         `gorm:"type:text;not null"`
	CodeSnippet sql.NullString `gorm:"type:text"`
	UserID      int64          `gorm:"index;not null"`
	User        User           `gorm:"foreignKey:UserID"`
}
