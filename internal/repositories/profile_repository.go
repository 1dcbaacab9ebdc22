package repositories

import (
	"errors"

	"github.com/lumilens-app/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileBySubjectID(subjectID string) (*models.Profile, error)
	GetProfileByUsername(username string) (*models.Profile, error)
	GetProfilesByIDs(ids []string) (map[string]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile. A duplicate subject ID or username
// surfaces as gorm.ErrDuplicatedKey for the caller to absorb.
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by its primary ID
func (r *PostgresProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileBySubjectID retrieves a profile by its identity-provider subject ID
func (r *PostgresProfileRepository) GetProfileBySubjectID(subjectID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("subject_id = ?", subjectID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUsername retrieves a profile by username
func (r *PostgresProfileRepository) GetProfileByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfilesByIDs retrieves a batch of profiles keyed by ID. Missing IDs are
// simply absent from the map.
func (r *PostgresProfileRepository) GetProfilesByIDs(ids []string) (map[string]models.Profile, error) {
	if len(ids) == 0 {
		return map[string]models.Profile{}, nil
	}
	var profiles []models.Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return byID, nil
}

// UpdateProfile persists changes to an existing profile
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
