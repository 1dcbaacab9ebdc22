package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID. The pair is
// unique and the edge's existence is the only state kept.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"following_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
