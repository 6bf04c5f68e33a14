package testutil

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/codehub/backend/internal/entity"
	"github.com/codehub/backend/pkg/crypto"
	"github.com/codehub/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// FixturePassword is the plain password of every fixture user.
const FixturePassword = "password123"

var fixtureTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

var (
	User1 = entity.User{
		Base:     entity.Base{ID: 1, CreatedAt: fixtureTime},
		Username: "alice",
		Email:    "alice@example.com",
		Bio:      "Gopher and backend engineer",
		Skills:   "Go, SQL",
	}

	User2 = entity.User{
		Base:     entity.Base{ID: 2, CreatedAt: fixtureTime},
		Username: "bob",
		Email:    "bob@example.com",
		Bio:      "Python developer",
		Skills:   "python, django",
	}

	User3 = entity.User{
		Base:     entity.Base{ID: 3, CreatedAt: fixtureTime},
		Username: "carol",
		Email:    "carol@example.com",
		Skills:   "rust",
	}

	Post1 = entity.Post{
		Base:        entity.Base{ID: 1, CreatedAt: fixtureTime.Add(time.Hour)},
		Content:     "Hello from alice",
		CodeSnippet: sql.NullString{Valid: true, String: "fmt.Println(\"hi\")"},
		UserID:      User1.ID,
	}

	Post2 = entity.Post{
		Base:    entity.Base{ID: 2, CreatedAt: fixtureTime.Add(2 * time.Hour)},
		Content: "Bob writes python",
		UserID:  User2.ID,
	}

	Post3 = entity.Post{
		Base:    entity.Base{ID: 3, CreatedAt: fixtureTime.Add(3 * time.Hour)},
		Content: "Carol loves rust",
		UserID:  User3.ID,
	}

	// User1 follows User2.
	Follow1 = entity.Follow{
		Base:       entity.Base{ID: 1, CreatedAt: fixtureTime},
		FollowerID: User1.ID,
		FollowedID: User2.ID,
	}

	// User2 likes Post1.
	Like1 = entity.Like{
		Base:   entity.Base{ID: 1, CreatedAt: fixtureTime.Add(4 * time.Hour)},
		UserID: User2.ID,
		PostID: Post1.ID,
	}

	Comment1 = entity.Comment{
		Base:    entity.Base{ID: 1, CreatedAt: fixtureTime.Add(5 * time.Hour)},
		Content: "Nice snippet",
		UserID:  User2.ID,
		PostID:  Post1.ID,
	}

	Repo1 = entity.Repo{
		Base:        entity.Base{ID: 1, CreatedAt: fixtureTime.Add(time.Hour)},
		Name:        "codehub",
		Description: "A social platform for developers",
		Code:        "package main",
		Language:    "go",
		UserID:      User1.ID,
	}
)

var (
	passwordHash     string
	passwordHashOnce sync.Once
)

// FixturePasswordHash returns the bcrypt hash of FixturePassword. It is
// computed once per test binary.
func FixturePasswordHash() string {
	passwordHashOnce.Do(func() {
		var err error
		passwordHash, err = crypto.HashPassword(FixturePassword)
		if err != nil {
			panic(err)
		}
	})

	return passwordHash
}

// CreateFixtureDb inserts the fixture records into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)

	for _, u := range []entity.User{User1, User2, User3} {
		u.Password = FixturePasswordHash()
		if err := db.Create(&u).Error; err != nil {
			panic(err)
		}
	}

	records := []any{
		&[]entity.Post{Post1, Post2, Post3},
		&[]entity.Follow{Follow1},
		&[]entity.Like{Like1},
		&[]entity.Comment{Comment1},
		&[]entity.Repo{Repo1},
	}

	for _, r := range records {
		if err := db.Omit(clause.Associations).Create(r).Error; err != nil {
			panic(err)
		}
	}
}
