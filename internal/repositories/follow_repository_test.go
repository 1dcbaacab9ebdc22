package repositories

import (
	"testing"
	"time"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFollowUniqueConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The reverse edge is a different pair.
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
}

func TestDeleteFollowAbsentEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")

	assert.ErrorIs(t, repo.DeleteFollow(alice.ID, bob.ID), ErrNotFound)

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.DeleteFollow(alice.ID, bob.ID))
	assert.ErrorIs(t, repo.DeleteFollow(alice.ID, bob.ID), ErrNotFound)
}

func TestIsFollowingDirectionality(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	ok, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetFollowersJoinAndOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	target := createTestProfile(t, db, "target")
	first := createTestProfile(t, db, "first")
	second := createTestProfile(t, db, "second")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Follow{FollowerID: first.ID, FollowingID: target.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: second.ID, FollowingID: target.ID, CreatedAt: base.Add(time.Minute)}).Error)

	followers, err := repo.GetFollowers(target.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "second", followers[0].Username)
	assert.Equal(t, "first", followers[1].Username)

	following, err := repo.GetFollowing(first.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "target", following[0].Username)
}

func TestFollowCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestProfile(t, db, "alice")
	bob := createTestProfile(t, db, "bob")
	carol := createTestProfile(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	followers, err := repo.GetFollowersCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.GetFollowingCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}
