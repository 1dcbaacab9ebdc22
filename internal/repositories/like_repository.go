package repositories

import (
	"github.com/lumilens-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like edge operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(profileID, photoID string) error
	HasLiked(profileID, photoID string) (bool, error)
	GetLikesByPhotoID(photoID string) ([]models.Like, error)
	GetLikesCountByPhotoID(photoID string) (int64, error)
	GetLikesCountByPhotoIDs(photoIDs []string) (map[string]int64, error)
	GetLikedPhotoIDs(profileID string, photoIDs []string) (map[string]bool, error)
	GetLikesCountByProfileID(profileID string) (int64, error)
	DeleteLikesByPhotoID(photoID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like row. A concurrent duplicate surfaces as
// gorm.ErrDuplicatedKey; the unique (profile, photo) index is the source
// of truth.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes a like, returning ErrNotFound when absent.
func (r *PostgresLikeRepository) DeleteLike(profileID, photoID string) error {
	res := r.db.Where("profile_id = ? AND photo_id = ?", profileID, photoID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasLiked checks whether the profile has liked the photo
func (r *PostgresLikeRepository) HasLiked(profileID, photoID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("profile_id = ? AND photo_id = ?", profileID, photoID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesByPhotoID lists a photo's likes, most recent first
func (r *PostgresLikeRepository) GetLikesByPhotoID(photoID string) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("photo_id = ?", photoID).Order("created_at DESC").Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *PostgresLikeRepository) GetLikesCountByPhotoID(photoID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("photo_id = ?", photoID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetLikesCountByPhotoIDs counts likes for a batch of photos in one grouped
// query. Photos with no likes are absent from the map.
func (r *PostgresLikeRepository) GetLikesCountByPhotoIDs(photoIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(photoIDs))
	if len(photoIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PhotoID string
		Count   int64
	}
	err := r.db.Model(&models.Like{}).
		Select("photo_id, COUNT(*) as count").
		Where("photo_id IN ?", photoIDs).
		Group("photo_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PhotoID] = row.Count
	}
	return counts, nil
}

// GetLikedPhotoIDs reports which of the given photos the profile has liked.
// Used to annotate the feed in one query instead of one per photo.
func (r *PostgresLikeRepository) GetLikedPhotoIDs(profileID string, photoIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(photoIDs))
	if profileID == "" || len(photoIDs) == 0 {
		return liked, nil
	}
	var ids []string
	err := r.db.Model(&models.Like{}).
		Where("profile_id = ? AND photo_id IN ?", profileID, photoIDs).
		Pluck("photo_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// GetLikesCountByProfileID counts likes the given profile has placed
func (r *PostgresLikeRepository) GetLikesCountByProfileID(profileID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}

// DeleteLikesByPhotoID removes every like pointing at a deleted photo
func (r *PostgresLikeRepository) DeleteLikesByPhotoID(photoID string) error {
	return r.db.Where("photo_id = ?", photoID).Delete(&models.Like{}).Error
}
