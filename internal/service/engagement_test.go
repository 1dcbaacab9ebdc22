package service

import (
	"context"
	"testing"
	"time"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeContentStore is an in-memory stand-in for the Mongo photo store.
type fakeContentStore struct {
	photos map[string]*models.Photo
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{photos: map[string]*models.Photo{}}
}

func (f *fakeContentStore) addPhoto(ownerID string, isPublic bool) string {
	photo := &models.Photo{
		ID:        primitive.NewObjectID(),
		ProfileID: ownerID,
		IsPublic:  isPublic,
	}
	f.photos[photo.ID.Hex()] = photo
	return photo.ID.Hex()
}

func (f *fakeContentStore) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return photo, nil
}

func (f *fakeContentStore) CountPhotosByProfileID(ctx context.Context, profileID string, publicOnly bool) (int64, error) {
	var count int64
	for _, p := range f.photos {
		if p.ProfileID != profileID {
			continue
		}
		if publicOnly && !p.IsPublic {
			continue
		}
		count++
	}
	return count, nil
}

type serviceFixture struct {
	db            *gorm.DB
	photos        *fakeContentStore
	profiles      *repositories.PostgresProfileRepository
	follows       *repositories.PostgresFollowRepository
	likes         *repositories.PostgresLikeRepository
	notifications repositories.NotificationRepository
	engagement    *EngagementService
	profileSvc    *ProfileService
}

func setupFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
	))

	photos := newFakeContentStore()
	profiles := repositories.NewPostgresProfileRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	likes := repositories.NewPostgresLikeRepository(db)
	notifications := repositories.NewPostgresNotificationRepository(db)

	return &serviceFixture{
		db:            db,
		photos:        photos,
		profiles:      profiles,
		follows:       follows,
		likes:         likes,
		notifications: notifications,
		engagement:    NewEngagementService(follows, likes, notifications, profiles, photos),
		profileSvc:    NewProfileService(profiles, follows, likes, photos),
	}
}

func (f *serviceFixture) addProfile(t *testing.T, username string) *models.Profile {
	t.Helper()
	profile := &models.Profile{SubjectID: "sub-" + username, Username: username}
	require.NoError(t, f.profiles.CreateProfile(profile))
	return profile
}

func TestToggleLikeCycles(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	res, err := f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	res, err = f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.False(t, res.Liked)

	res, err = f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeNotifiesOwner(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	res, err := f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	count, err := f.engagement.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	entries, err := f.engagement.ListNotifications(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.NotificationTypeLike, entries[0].Type)
	assert.Equal(t, "alice", entries[0].ActorName)
	assert.Equal(t, photoID, entries[0].TargetID)
	assert.Equal(t, "liked your work", entries[0].Content)
}

func TestToggleLikeOwnPhotoSuppressesNotification(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	res, err := f.engagement.ToggleLike(ctx, bob.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnlikeKeepsNotification(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	_, err := f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	before, err := f.engagement.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)

	res, err := f.engagement.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.False(t, res.Liked)

	after, err := f.engagement.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "unliking must not retract the notification")
}

func TestToggleLikeMissingPhoto(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	_, err := f.engagement.ToggleLike(context.Background(), alice.ID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeRequiresCaller(t *testing.T) {
	f := setupFixture(t)
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	_, err := f.engagement.ToggleLike(context.Background(), "", photoID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// racingLikeRepo reports the like as absent so the service runs its create
// path into the unique constraint, as a lost duplicate-create race would.
type racingLikeRepo struct {
	repositories.LikeRepository
}

func (r *racingLikeRepo) HasLiked(profileID, photoID string) (bool, error) {
	return false, nil
}

func TestToggleLikeAbsorbsDuplicateRace(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")
	photoID := f.photos.addPhoto(bob.ID, true)

	racing := NewEngagementService(f.follows, &racingLikeRepo{f.likes}, f.notifications, f.profiles, f.photos)

	res, err := racing.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	// Second writer observes "absent" too but loses on the constraint.
	res, err = racing.ToggleLike(ctx, alice.ID, photoID)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "at most one like row survives the race")
}

func TestToggleFollowCycleByUsername(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")

	res, err := f.engagement.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.IsFollowing)

	followers, err := f.engagement.GetFollowers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	res, err = f.engagement.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, res.IsFollowing)

	followers, err = f.engagement.GetFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestToggleFollowNotifies(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	alice := f.addProfile(t, "alice")
	bob := f.addProfile(t, "bob")

	_, err := f.engagement.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	entries, err := f.engagement.ListNotifications(ctx, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.NotificationTypeFollow, entries[0].Type)
	assert.Equal(t, "started following you", entries[0].Content)
	assert.Empty(t, entries[0].TargetID)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	for _, identifier := range []string{alice.ID, "alice"} {
		_, err := f.engagement.ToggleFollow(context.Background(), alice.ID, identifier)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected self-follow must not create an edge")
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	_, err := f.engagement.ToggleFollow(context.Background(), alice.ID, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFollowersOrderedByEdgeRecency(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	target := f.addProfile(t, "target")
	first := f.addProfile(t, "first")
	second := f.addProfile(t, "second")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, f.db.Create(&models.Follow{FollowerID: first.ID, FollowingID: target.ID, CreatedAt: base}).Error)
	require.NoError(t, f.db.Create(&models.Follow{FollowerID: second.ID, FollowingID: target.ID, CreatedAt: base.Add(time.Minute)}).Error)

	followers, err := f.engagement.GetFollowers(ctx, "target")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "second", followers[0].Username)
	assert.Equal(t, "first", followers[1].Username)
}

func TestGetLikersOrderedByLikeRecency(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	owner := f.addProfile(t, "owner")
	early := f.addProfile(t, "early")
	late := f.addProfile(t, "late")
	photoID := f.photos.addPhoto(owner.ID, true)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, f.db.Create(&models.Like{ProfileID: early.ID, PhotoID: photoID, CreatedAt: base}).Error)
	require.NoError(t, f.db.Create(&models.Like{ProfileID: late.ID, PhotoID: photoID, CreatedAt: base.Add(time.Minute)}).Error)

	likers, err := f.engagement.GetLikers(ctx, photoID)
	require.NoError(t, err)
	require.Len(t, likers, 2)
	assert.Equal(t, "late", likers[0].Username)
	assert.Equal(t, "early", likers[1].Username)
}

func TestGetLikersEmptyForUnlikedPhoto(t *testing.T) {
	f := setupFixture(t)
	likers, err := f.engagement.GetLikers(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, likers)
}
