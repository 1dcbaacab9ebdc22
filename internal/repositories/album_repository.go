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

// AlbumRepository defines the interface for album data operations
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album *models.Album) error
	GetAlbumByID(ctx context.Context, id string) (*models.Album, error)
	GetAlbumsByProfileID(ctx context.Context, profileID string) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id string, update bson.M) error
	DeleteAlbum(ctx context.Context, id string) error
}

// MongoAlbumRepository implements AlbumRepository for MongoDB
type MongoAlbumRepository struct {
	collection *mongo.Collection
}

// NewMongoAlbumRepository creates a new MongoAlbumRepository
func NewMongoAlbumRepository(db *mongo.Database) *MongoAlbumRepository {
	return &MongoAlbumRepository{collection: db.Collection("albums")}
}

// CreateAlbum inserts a new album document
func (r *MongoAlbumRepository) CreateAlbum(ctx context.Context, album *models.Album) error {
	album.ID = primitive.NewObjectID()
	album.CreatedAt = time.Now()
	album.UpdatedAt = album.CreatedAt
	_, err := r.collection.InsertOne(ctx, album)
	return err
}

// GetAlbumByID retrieves an album by its hex ID
func (r *MongoAlbumRepository) GetAlbumByID(ctx context.Context, id string) (*models.Album, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var album models.Album
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&album)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &album, nil
}

// GetAlbumsByProfileID retrieves a profile's albums, newest first
func (r *MongoAlbumRepository) GetAlbumsByProfileID(ctx context.Context, profileID string) ([]models.Album, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"profile_id": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var albums []models.Album
	if err = cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// UpdateAlbum applies a partial update to an album document
func (r *MongoAlbumRepository) UpdateAlbum(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid album ID format: %w", err)
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

// DeleteAlbum deletes an album document by hex ID
func (r *MongoAlbumRepository) DeleteAlbum(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid album ID format: %w", err)
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
