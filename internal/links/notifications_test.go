package links

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

func TestListNotificationsNormalizesPaging(t *testing.T) {
	manager, _, notifications, _ := newTestManager()

	views := []models.NotificationView{{ID: models.NewID()}}
	notifications.On("ListForUser", mock.Anything, receiverID, 0, 10).Return(views, 25, nil).Once()
	notifications.On("CountUnseen", mock.Anything, receiverID).Return(4, nil).Once()

	page, err := manager.ListNotifications(context.Background(), receiverID, -5, 0)
	require.NoError(t, err)
	assert.Equal(t, views, page.Notifications)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 4, page.NewNotifications)
	require.NotNil(t, page.NextSkip)
	assert.Equal(t, 10, *page.NextSkip)

	notifications.AssertExpectations(t)
}

func TestListNotificationsLastPage(t *testing.T) {
	manager, _, notifications, _ := newTestManager()

	notifications.On("ListForUser", mock.Anything, receiverID, 20, 10).Return([]models.NotificationView{}, 25, nil).Once()
	notifications.On("CountUnseen", mock.Anything, receiverID).Return(0, nil).Once()

	page, err := manager.ListNotifications(context.Background(), receiverID, 20, 10)
	require.NoError(t, err)
	assert.Nil(t, page.NextSkip)

	notifications.AssertExpectations(t)
}

func TestListNotificationsEmptyLogReturnsEmptySlice(t *testing.T) {
	manager, _, notifications, _ := newTestManager()

	notifications.On("ListForUser", mock.Anything, receiverID, 0, 10).Return(([]models.NotificationView)(nil), 0, nil).Once()
	notifications.On("CountUnseen", mock.Anything, receiverID).Return(0, nil).Once()

	page, err := manager.ListNotifications(context.Background(), receiverID, 0, 10)
	require.NoError(t, err)
	require.NotNil(t, page.Notifications)
	assert.Empty(t, page.Notifications)
	assert.Nil(t, page.NextSkip)
}

func TestMarkNotificationSeenInvalidID(t *testing.T) {
	manager, _, _, _ := newTestManager()

	err := manager.MarkNotificationSeen(context.Background(), "short")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestMarkNotificationSeenPassesThrough(t *testing.T) {
	manager, _, notifications, _ := newTestManager()

	id := models.NewID()
	notifications.On("MarkSeen", mock.Anything, id).Return(repositories.ErrNotificationNotFound).Once()

	err := manager.MarkNotificationSeen(context.Background(), id)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
	notifications.AssertExpectations(t)
}
