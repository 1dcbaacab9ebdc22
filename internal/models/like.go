package models

import "time"

// Like associates a profile with a photo it liked. At most one row exists
// per (profile, photo); unliking hard-deletes the row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID string    `json:"profile_id" gorm:"type:uuid;index;uniqueIndex:idx_profile_photo"`
	PhotoID   string    `json:"photo_id" gorm:"index;uniqueIndex:idx_profile_photo"` // content-store photo ID (hex string)
	CreatedAt time.Time `json:"created_at"`
}

// Liker is one entry of a photo's likers list.
type Liker struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
	LikedAt  time.Time `json:"likedAt"`
}
