package entity

import "database/sql"

// OAuthPassword is stored instead of a password hash for accounts created by
// an oauth2 login. It never matches a bcrypt comparison.
const OAuthPassword = "oauth"

type User struct {
	Base
	Username       string         `gorm:"unique;size:80;not null"`
	Email          string         `gorm:"unique;size:120;not null"`
	Password       string         `gorm:"size:128;not null"`
	Bio            string         `gorm:"type:text"`
	Skills         string         `gorm:"size:500"`
	GitHubUsername sql.NullString `gorm:"size:100"`
}
