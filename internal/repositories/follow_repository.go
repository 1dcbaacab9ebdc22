package repositories

import (
	"github.com/lumilens-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(profileID string) ([]models.Profile, error)
	GetFollowing(profileID string) ([]models.Profile, error)
	GetFollowersCount(profileID string) (int64, error)
	GetFollowingCount(profileID string) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow edge. A concurrent duplicate surfaces as
// gorm.ErrDuplicatedKey; the unique (follower, following) index is the
// source of truth.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// DeleteFollow removes a follow edge, returning ErrNotFound when absent.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers lists the profiles following profileID, most recent edge first.
func (r *PostgresFollowRepository) GetFollowers(profileID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Model(&models.Follow{}).
		Select("profiles.*").
		Joins("JOIN profiles ON profiles.id = follows.follower_id").
		Where("follows.following_id = ?", profileID).
		Order("follows.created_at DESC").
		Scan(&profiles).Error
	return profiles, err
}

// GetFollowing lists the profiles profileID follows, most recent edge first.
func (r *PostgresFollowRepository) GetFollowing(profileID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Model(&models.Follow{}).
		Select("profiles.*").
		Joins("JOIN profiles ON profiles.id = follows.following_id").
		Where("follows.follower_id = ?", profileID).
		Order("follows.created_at DESC").
		Scan(&profiles).Error
	return profiles, err
}

func (r *PostgresFollowRepository) GetFollowersCount(profileID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", profileID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(profileID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, err
}
