package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/lumilens-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PhotoRepository defines the interface for photo data operations
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	GetPhotosByProfileID(ctx context.Context, profileID string) ([]models.Photo, error)
	GetPhotosByAlbumID(ctx context.Context, albumID string) ([]models.Photo, error)
	GetPublicPhotos(ctx context.Context, skip, limit int64) ([]models.Photo, error)
	CountPhotosByProfileID(ctx context.Context, profileID string, publicOnly bool) (int64, error)
	CountPhotosByAlbumID(ctx context.Context, albumID string) (int64, error)
	UpdatePhoto(ctx context.Context, id string, update bson.M) error
	DeletePhoto(ctx context.Context, id string) error
	DeletePhotosByAlbumID(ctx context.Context, albumID string) error
}

// MongoPhotoRepository implements PhotoRepository for MongoDB
type MongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new MongoPhotoRepository
func NewMongoPhotoRepository(db *mongo.Database) *MongoPhotoRepository {
	return &MongoPhotoRepository{collection: db.Collection("photos")}
}

// CreatePhoto inserts a new photo document
func (r *MongoPhotoRepository) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	photo.ID = primitive.NewObjectID()
	photo.CreatedAt = time.Now()
	photo.UpdatedAt = photo.CreatedAt
	if photo.Metadata == nil {
		photo.Metadata = map[string]any{}
	}
	_, err := r.collection.InsertOne(ctx, photo)
	return err
}

// GetPhotoByID retrieves a photo by its hex ID
func (r *MongoPhotoRepository) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var photo models.Photo
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&photo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetPhotosByProfileID retrieves a profile's photos, newest first
func (r *MongoPhotoRepository) GetPhotosByProfileID(ctx context.Context, profileID string) ([]models.Photo, error) {
	return r.find(ctx, bson.M{"profile_id": profileID}, nil)
}

// GetPhotosByAlbumID retrieves an album's photos, newest first
func (r *MongoPhotoRepository) GetPhotosByAlbumID(ctx context.Context, albumID string) ([]models.Photo, error) {
	return r.find(ctx, bson.M{"album_id": albumID}, nil)
}

// GetPublicPhotos retrieves public photos with pagination, newest first
func (r *MongoPhotoRepository) GetPublicPhotos(ctx context.Context, skip, limit int64) ([]models.Photo, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	return r.find(ctx, bson.M{"is_public": true}, opts)
}

func (r *MongoPhotoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Photo, error) {
	if opts == nil {
		opts = options.Find()
	}
	opts.SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// CountPhotosByProfileID counts a profile's photos, optionally public only
func (r *MongoPhotoRepository) CountPhotosByProfileID(ctx context.Context, profileID string, publicOnly bool) (int64, error) {
	filter := bson.M{"profile_id": profileID}
	if publicOnly {
		filter["is_public"] = true
	}
	return r.collection.CountDocuments(ctx, filter)
}

// CountPhotosByAlbumID counts the photos in an album
func (r *MongoPhotoRepository) CountPhotosByAlbumID(ctx context.Context, albumID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"album_id": albumID})
}

// UpdatePhoto applies a partial update to a photo document
func (r *MongoPhotoRepository) UpdatePhoto(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid photo ID format: %w", err)
	}

	update["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePhoto deletes a photo document by hex ID
func (r *MongoPhotoRepository) DeletePhoto(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid photo ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePhotosByAlbumID deletes every photo belonging to an album
func (r *MongoPhotoRepository) DeletePhotosByAlbumID(ctx context.Context, albumID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"album_id": albumID})
	return err
}
