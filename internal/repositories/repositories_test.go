package repositories

import (
	"testing"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	))
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	profile := &models.Profile{SubjectID: "sub-" + username, Username: username}
	require.NoError(t, db.Create(profile).Error)
	return profile
}
