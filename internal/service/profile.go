package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// ProfileStats are the counters shown alongside a profile.
type ProfileStats struct {
	Works     int64 `json:"works"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Likes     int64 `json:"likes"`
}

// ProfileView is a profile with its stats and, for third-party views, the
// caller's follow state.
type ProfileView struct {
	Profile     models.Profile `json:"profile"`
	IsFollowing bool           `json:"isFollowing"`
	Stats       ProfileStats   `json:"stats"`
}

// ProfileService owns the profile directory: lazy creation on first
// authenticated sync, lookups and updates.
type ProfileService struct {
	profiles repositories.ProfileRepository
	follows  repositories.FollowRepository
	likes    repositories.LikeRepository
	photos   ContentStore
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profiles repositories.ProfileRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	photos ContentStore,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		follows:  follows,
		likes:    likes,
		photos:   photos,
	}
}

// Sync gets or creates the profile for an identity-provider subject. Invoked
// once per session bootstrap; idempotent. The default username is the email's
// local part, and a collision is resolved by suffixing a random token. The
// insert is guarded by the unique subject constraint: a duplicate-key loss
// means a concurrent sync won, so the winner's row is re-read.
func (s *ProfileService) Sync(ctx context.Context, subjectID, email string, req models.SyncProfileRequest) (*ProfileView, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}

	profile, err := s.profiles.GetProfileBySubjectID(subjectID)
	if errors.Is(err, repositories.ErrNotFound) {
		profile, err = s.createProfile(subjectID, email, req)
	}
	if err != nil {
		return nil, err
	}

	return s.view(ctx, profile, "", false)
}

func (s *ProfileService) createProfile(subjectID, email string, req models.SyncProfileRequest) (*models.Profile, error) {
	base := req.Username
	if base == "" {
		base = usernameFromEmail(email)
	}

	username := base
	if _, err := s.profiles.GetProfileByUsername(username); err == nil {
		username = fmt.Sprintf("%s_%s", base, uuid.NewString()[:4])
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	// The unique constraints arbitrate the races the availability check
	// cannot see. A duplicate subject means a concurrent sync for the same
	// identity won, so the winner's row is returned; otherwise the username
	// was taken between check and insert and a fresh suffix gets another try.
	for attempt := 0; attempt < 3; attempt++ {
		profile := &models.Profile{
			SubjectID: subjectID,
			Username:  username,
			AvatarURL: req.AvatarURL,
			Bio:       req.Bio,
		}
		err := s.profiles.CreateProfile(profile)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		winner, err := s.profiles.GetProfileBySubjectID(subjectID)
		if err == nil {
			return winner, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		username = fmt.Sprintf("%s_%s", base, uuid.NewString()[:4])
	}
	return nil, fmt.Errorf("%w: username %q taken", ErrConflict, base)
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	if email != "" {
		return email
	}
	return "user"
}

// GetMe returns the caller's own profile with full stats.
func (s *ProfileService) GetMe(ctx context.Context, profileID string) (*ProfileView, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	profile, err := s.profiles.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile %q", ErrNotFound, profileID)
		}
		return nil, err
	}
	return s.view(ctx, profile, "", false)
}

// GetProfile returns the profile named by identifier (ID or username) with
// stats counting public works only, plus whether the viewer follows it.
func (s *ProfileService) GetProfile(ctx context.Context, identifier, viewerID string) (*ProfileView, error) {
	res, err := ResolveProfile(s.profiles, identifier)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, res.Profile, viewerID, true)
}

// UpdateProfile applies the caller's profile changes. A username collision is
// reported as a conflict.
func (s *ProfileService) UpdateProfile(ctx context.Context, profileID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	profile, err := s.profiles.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile %q", ErrNotFound, profileID)
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != "" {
		profile.Username = *req.Username
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.profiles.UpdateProfile(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q taken", ErrConflict, profile.Username)
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) view(ctx context.Context, profile *models.Profile, viewerID string, publicOnly bool) (*ProfileView, error) {
	works, err := s.photos.CountPhotosByProfileID(ctx, profile.ID, publicOnly)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.GetFollowersCount(profile.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.GetFollowingCount(profile.ID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.GetLikesCountByProfileID(profile.ID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Profile: *profile,
		Stats: ProfileStats{
			Works:     works,
			Followers: followers,
			Following: following,
			Likes:     likes,
		},
	}
	if viewerID != "" && viewerID != profile.ID {
		isFollowing, err := s.follows.IsFollowing(viewerID, profile.ID)
		if err != nil {
			return nil, err
		}
		view.IsFollowing = isFollowing
	}
	return view, nil
}
