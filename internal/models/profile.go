package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the directory record for one identity-provider subject. It is
// created lazily on the subject's first authenticated sync, never as part of
// sign-up.
type Profile struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	SubjectID string    `json:"-" gorm:"uniqueIndex;not null"` // identity-provider subject
	Username  string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	AvatarURL string    `json:"avatarUrl"`
	Bio       string    `json:"bio" gorm:"size:500"`
	Role      string    `json:"role" gorm:"size:20;default:user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProfileSummary is the short form used in follower and following lists.
type ProfileSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

// ToSummary converts the Profile to its list form
func (p *Profile) ToSummary() ProfileSummary {
	return ProfileSummary{
		ID:       p.ID,
		Username: p.Username,
		Avatar:   p.AvatarURL,
		Bio:      p.Bio,
		Role:     p.Role,
	}
}

// SyncProfileRequest carries the optional seed fields for a first sync.
type SyncProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=30,alphanum|containsany=_-"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
}

// UpdateProfileRequest defines the mutable profile fields. Nil means
// unchanged; a pointer to "" clears the avatar or bio.
type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
