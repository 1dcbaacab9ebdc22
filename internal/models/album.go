package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Album groups photos by kind. Type is one of photo, ai, paint.
type Album struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProfileID   string             `json:"profile_id" bson:"profile_id"`
	Title       string             `json:"title" bson:"title"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description" bson:"description"`
	CoverURL    string             `json:"cover_url" bson:"cover_url"`
	IsPublic    bool               `json:"is_public" bson:"is_public"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateAlbumRequest defines the request body for album creation.
type CreateAlbumRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Type        string `json:"type" validate:"required,oneof=photo ai paint"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateAlbumRequest defines the mutable album fields.
type UpdateAlbumRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}
