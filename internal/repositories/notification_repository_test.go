package repositories

import (
	"testing"
	"time"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, db *gorm.DB, recipientID, actorID string, n int) []models.Notification {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	out := make([]models.Notification, 0, n)
	for i := 0; i < n; i++ {
		notification := models.Notification{
			ProfileID: recipientID,
			ActorID:   actorID,
			Type:      models.NotificationTypeLike,
			Content:   "liked your work",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&notification).Error)
		out = append(out, notification)
	}
	return out
}

func TestGetByRecipientIDOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")
	seeded := seedNotifications(t, db, bob.ID, alice.ID, 5)

	got, err := repo.GetByRecipientID(bob.ID, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Newest seeded entry comes back first.
	assert.Equal(t, seeded[4].ID, got[0].ID)
	assert.Equal(t, seeded[2].ID, got[2].ID)

	got, err = repo.GetByRecipientID(alice.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMarkAsReadScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")
	seeded := seedNotifications(t, db, bob.ID, alice.ID, 1)

	assert.ErrorIs(t, repo.MarkAsRead(seeded[0].ID, alice.ID), ErrNotFound)
	assert.ErrorIs(t, repo.MarkAsRead(9999, bob.ID), ErrNotFound)

	require.NoError(t, repo.MarkAsRead(seeded[0].ID, bob.ID))
	require.NoError(t, repo.MarkAsRead(seeded[0].ID, bob.ID), "already read is a no-op")

	count, err := repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")
	seedNotifications(t, db, bob.ID, alice.ID, 4)
	seedNotifications(t, db, alice.ID, bob.ID, 2)

	require.NoError(t, repo.MarkAllAsRead(bob.ID))

	count, err := repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other recipients are untouched.
	count, err = repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkAllAsRead(bob.ID), "nothing unread is still a success")
}
