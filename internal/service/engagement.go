package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"gorm.io/gorm"
)

const (
	likeContent   = "liked your work"
	followContent = "started following you"

	// fallbackActorName is shown when a notification's actor profile has
	// since been deleted.
	fallbackActorName = "user"

	// maxNotificationLimit caps a single notification page.
	maxNotificationLimit = 50
)

// ContentStore is the narrow view of the photo store this package needs:
// photo existence, ownership, and per-profile counts. The engagement service
// never mutates content.
type ContentStore interface {
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	CountPhotosByProfileID(ctx context.Context, profileID string, publicOnly bool) (int64, error)
}

// LikeToggle is the outcome of a toggle-like call.
type LikeToggle struct {
	Liked   bool   `json:"liked"`
	Message string `json:"message"`
}

// FollowToggle is the outcome of a toggle-follow call.
type FollowToggle struct {
	IsFollowing bool   `json:"isFollowing"`
	Message     string `json:"message"`
}

// EngagementService orchestrates the relationship and notification ledgers.
// It is the only component that mutates both together, and it defines the
// toggle semantics that make repeated client actions safe despite the
// ledgers' strict create/delete contracts.
type EngagementService struct {
	follows       repositories.FollowRepository
	likes         repositories.LikeRepository
	notifications repositories.NotificationRepository
	profiles      repositories.ProfileRepository
	photos        ContentStore
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	notifications repositories.NotificationRepository,
	profiles repositories.ProfileRepository,
	photos ContentStore,
) *EngagementService {
	return &EngagementService{
		follows:       follows,
		likes:         likes,
		notifications: notifications,
		profiles:      profiles,
		photos:        photos,
	}
}

// ToggleLike flips the actor's like state on a photo and returns the new
// state. The existence check is an optimization; the unique constraint on
// (profile, photo) is the arbiter when concurrent duplicates race, and a
// loser's constraint violation is absorbed as a state re-read rather than
// surfaced.
func (s *EngagementService) ToggleLike(ctx context.Context, actorProfileID, photoID string) (*LikeToggle, error) {
	if actorProfileID == "" {
		return nil, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}

	photo, err := s.photos.GetPhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: photo %q", ErrNotFound, photoID)
		}
		return nil, err
	}

	liked, err := s.likes.HasLiked(actorProfileID, photoID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likes.DeleteLike(actorProfileID, photoID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// A concurrent request already removed it.
				return &LikeToggle{Liked: false, Message: "like removed"}, nil
			}
			return nil, err
		}
		return &LikeToggle{Liked: false, Message: "like removed"}, nil
	}

	like := &models.Like{ProfileID: actorProfileID, PhotoID: photoID}
	if err := s.likes.CreateLike(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a duplicate-create race: the row exists, so the
			// caller's intent is already satisfied.
			return &LikeToggle{Liked: true, Message: "photo liked"}, nil
		}
		return nil, err
	}

	// Best-effort secondary write: a dropped notification never fails the
	// like. Self-notifications are suppressed.
	if photo.ProfileID != actorProfileID {
		s.notify(&models.Notification{
			ProfileID: photo.ProfileID,
			ActorID:   actorProfileID,
			Type:      models.NotificationTypeLike,
			TargetID:  photoID,
			Content:   likeContent,
		})
	}

	return &LikeToggle{Liked: true, Message: "photo liked"}, nil
}

// ToggleFollow flips the follow edge from followerID to the target, which may
// be identified by profile ID or username. Self-follows are rejected.
func (s *EngagementService) ToggleFollow(ctx context.Context, followerID, targetIdentifier string) (*FollowToggle, error) {
	if followerID == "" {
		return nil, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}

	res, err := ResolveProfile(s.profiles, targetIdentifier)
	if err != nil {
		return nil, err
	}
	target := res.Profile

	if target.ID == followerID {
		return nil, fmt.Errorf("%w: cannot follow self", ErrInvalidOperation)
	}

	following, err := s.follows.IsFollowing(followerID, target.ID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.follows.DeleteFollow(followerID, target.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &FollowToggle{IsFollowing: false, Message: "unfollowed"}, nil
			}
			return nil, err
		}
		return &FollowToggle{IsFollowing: false, Message: "unfollowed"}, nil
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: target.ID}
	if err := s.follows.CreateFollow(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &FollowToggle{IsFollowing: true, Message: "now following"}, nil
		}
		return nil, err
	}

	s.notify(&models.Notification{
		ProfileID: target.ID,
		ActorID:   followerID,
		Type:      models.NotificationTypeFollow,
		Content:   followContent,
	})

	return &FollowToggle{IsFollowing: true, Message: "now following"}, nil
}

// notify appends a notification, logging and swallowing any failure so the
// primary ledger write is never rolled back or failed by it.
func (s *EngagementService) notify(n *models.Notification) {
	if err := s.notifications.CreateNotification(n); err != nil {
		log.Printf("notification append failed (type=%s recipient=%s): %v", n.Type, n.ProfileID, err)
	}
}

// GetLikers lists the profiles that liked a photo, most recent like first.
// A missing photo yields an empty list, not an error.
func (s *EngagementService) GetLikers(ctx context.Context, photoID string) ([]models.Liker, error) {
	likes, err := s.likes.GetLikesByPhotoID(photoID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.ProfileID)
	}
	profiles, err := s.profiles.GetProfilesByIDs(ids)
	if err != nil {
		return nil, err
	}

	likers := make([]models.Liker, 0, len(likes))
	for _, l := range likes {
		p, ok := profiles[l.ProfileID]
		if !ok {
			continue
		}
		likers = append(likers, models.Liker{
			ID:       p.ID,
			Username: p.Username,
			Avatar:   p.AvatarURL,
			LikedAt:  l.CreatedAt,
		})
	}
	return likers, nil
}

// GetFollowers lists the followers of the profile named by identifier (ID or
// username), most recent edge first.
func (s *EngagementService) GetFollowers(ctx context.Context, identifier string) ([]models.ProfileSummary, error) {
	res, err := ResolveProfile(s.profiles, identifier)
	if err != nil {
		return nil, err
	}
	profiles, err := s.follows.GetFollowers(res.Profile.ID)
	if err != nil {
		return nil, err
	}
	return toSummaries(profiles), nil
}

// GetFollowing lists who the profile named by identifier follows, most recent
// edge first.
func (s *EngagementService) GetFollowing(ctx context.Context, identifier string) ([]models.ProfileSummary, error) {
	res, err := ResolveProfile(s.profiles, identifier)
	if err != nil {
		return nil, err
	}
	profiles, err := s.follows.GetFollowing(res.Profile.ID)
	if err != nil {
		return nil, err
	}
	return toSummaries(profiles), nil
}

func toSummaries(profiles []models.Profile) []models.ProfileSummary {
	summaries := make([]models.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, p.ToSummary())
	}
	return summaries
}
