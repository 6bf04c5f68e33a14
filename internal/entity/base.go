package entity

import "time"

// Base carries the columns shared by every table. Rows are never updated in
// place, so there is no updated_at, and deletions are hard deletes.
type Base struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"index"`
}
