package models

import "time"

// Notification types.
const (
	NotificationTypeLike   = "like"
	NotificationTypeFollow = "follow"
)

// Notification is one append-only entry of a recipient's engagement feed.
// Creation is the only write apart from the is_read false->true transition;
// entries are never deleted by user action.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID string    `json:"profile_id" gorm:"type:uuid;index"` // recipient
	ActorID   string    `json:"actor_id" gorm:"type:uuid;index"`
	Type      string    `json:"type" gorm:"size:30;index"` // like, follow
	TargetID  string    `json:"target_id"`                 // photo ID for type=like
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// NotificationEntry is a notification annotated with actor details and a
// relative-time label, as returned to the client.
type NotificationEntry struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Content      string    `json:"content"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
	ActorID      string    `json:"actorId"`
	ActorName    string    `json:"actorName"`
	ActorAvatar  string    `json:"actorAvatar"`
	TargetID     string    `json:"targetId,omitempty"`
	RelativeTime string    `json:"relativeTime"`
}
