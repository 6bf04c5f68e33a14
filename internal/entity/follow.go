package entity

// Follow is a directed edge, FollowerID follows FollowedID.
type Follow struct {
	Base
	FollowerID int64 `gorm:"not null;uniqueIndex:idx_follow_follower_followed"`
	Follower   User  `gorm:"foreignKey:FollowerID"`
	FollowedID int64 `gorm:"not null;uniqueIndex:idx_follow_follower_followed;index"`
	Followed   User  `gorm:"foreignKey:FollowedID"`
}
