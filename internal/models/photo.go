package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is a content-store document. The owning ProfileID is the only field
// the engagement core reads; everything else belongs to the gallery surface.
type Photo struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProfileID    string             `json:"profile_id" bson:"profile_id"`
	AlbumID      string             `json:"album_id" bson:"album_id"`
	Title        string             `json:"title" bson:"title"`
	URL          string             `json:"url" bson:"url"`
	ThumbnailURL string             `json:"thumbnail_url" bson:"thumbnail_url"`
	IsPublic     bool               `json:"is_public" bson:"is_public"`
	Width        int                `json:"width" bson:"width"`
	Height       int                `json:"height" bson:"height"`
	Metadata     map[string]any     `json:"metadata" bson:"metadata"` // EXIF / AI-generation fields, opaque to the backend
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpdatePhotoRequest defines the mutable photo fields.
type UpdatePhotoRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=120"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

// FeedItem is one community feed entry: a public photo annotated with its
// author, album and like state for the calling profile.
type FeedItem struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Author     string         `json:"author"`
	AuthorID   string         `json:"authorId"`
	Avatar     string         `json:"avatar"`
	Album      string         `json:"album"`
	Category   string         `json:"category"`
	Src        string         `json:"src"`
	Thumbnail  string         `json:"thumbnailUrl"`
	Liked      bool           `json:"liked"`
	LikesCount int64          `json:"likesCount"`
	Meta       map[string]any `json:"meta"`
	IsUserPost bool           `json:"isUserPost"`
}
