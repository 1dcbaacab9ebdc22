package service

import (
	"testing"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfileByID(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	res, err := ResolveProfile(f.profiles, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ResolvedByID, res.Via)
	assert.Equal(t, alice.ID, res.Profile.ID)
}

func TestResolveProfileByUsername(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	res, err := ResolveProfile(f.profiles, "alice")
	require.NoError(t, err)
	assert.Equal(t, ResolvedByUsername, res.Via)
	assert.Equal(t, alice.ID, res.Profile.ID)
}

func TestResolveProfileIDPrecedence(t *testing.T) {
	f := setupFixture(t)
	alice := f.addProfile(t, "alice")

	// A username equal to another profile's ID must lose to the ID match.
	squatter := &models.Profile{SubjectID: "sub-squatter", Username: alice.ID}
	require.NoError(t, f.profiles.CreateProfile(squatter))

	res, err := ResolveProfile(f.profiles, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ResolvedByID, res.Via)
	assert.Equal(t, alice.ID, res.Profile.ID)
}

func TestResolveProfileNotFound(t *testing.T) {
	f := setupFixture(t)

	res, err := ResolveProfile(f.profiles, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, res)
}
