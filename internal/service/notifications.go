package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
)

// ListNotifications returns the recipient's feed, most recent first, bounded
// by limit (default and cap 50). Each entry carries actor details and a
// relative-time label computed at read time; a deleted actor falls back to a
// generic name.
func (s *EngagementService) ListNotifications(ctx context.Context, recipientID string, limit int) ([]models.NotificationEntry, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	if limit <= 0 || limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := s.notifications.GetByRecipientID(recipientID, limit)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		actorIDs = append(actorIDs, n.ActorID)
	}
	actors, err := s.profiles.GetProfilesByIDs(actorIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]models.NotificationEntry, 0, len(notifications))
	for _, n := range notifications {
		entry := models.NotificationEntry{
			ID:           n.ID,
			Type:         n.Type,
			Content:      n.Content,
			IsRead:       n.IsRead,
			CreatedAt:    n.CreatedAt,
			ActorID:      n.ActorID,
			ActorName:    fallbackActorName,
			TargetID:     n.TargetID,
			RelativeTime: relativeTime(n.CreatedAt, now),
		}
		if actor, ok := actors[n.ActorID]; ok {
			entry.ActorName = actor.Username
			entry.ActorAvatar = actor.AvatarURL
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// UnreadCount returns the recipient's number of unread notifications.
func (s *EngagementService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	if recipientID == "" {
		return 0, fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	return s.notifications.GetUnreadCount(recipientID)
}

// MarkRead marks one of the recipient's notifications as read. A notification
// belonging to another profile is indistinguishable from a missing one.
// Marking an already-read notification succeeds silently.
func (s *EngagementService) MarkRead(ctx context.Context, notificationID uint, recipientID string) error {
	if recipientID == "" {
		return fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	if err := s.notifications.MarkAsRead(notificationID, recipientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
		}
		return err
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient as read.
// Succeeds even when none are unread.
func (s *EngagementService) MarkAllRead(ctx context.Context, recipientID string) error {
	if recipientID == "" {
		return fmt.Errorf("%w: missing caller profile", ErrUnauthorized)
	}
	return s.notifications.MarkAllAsRead(recipientID)
}
