package links

import (
	"context"

	"social-service/internal/models"
)

const defaultPageLimit = 10

// ListNotifications returns one page of the user's notification log,
// newest-first, with the derived cursor for the next page.
func (m *Manager) ListNotifications(ctx context.Context, userID string, skip, limit int) (models.NotificationPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}

	views, total, err := m.notifications.ListForUser(ctx, userID, skip, limit)
	if err != nil {
		return models.NotificationPage{}, err
	}
	unseen, err := m.notifications.CountUnseen(ctx, userID)
	if err != nil {
		return models.NotificationPage{}, err
	}
	if views == nil {
		views = []models.NotificationView{}
	}
	return models.NotificationPage{
		Notifications:    views,
		Total:            total,
		NewNotifications: unseen,
		NextSkip:         models.NextSkip(skip, limit, total),
	}, nil
}

// MarkNotificationSeen flips a notification's seen flag.
func (m *Manager) MarkNotificationSeen(ctx context.Context, notificationID string) error {
	if !models.ValidID(notificationID) {
		return ErrInvalidID
	}
	return m.notifications.MarkSeen(ctx, notificationID)
}
