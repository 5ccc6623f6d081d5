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

const (
	campaignID = "cccccccccccccccccccccccc"
	postID     = "dddddddddddddddddddddddd"
)

func TestConnectToCampaignFansOut(t *testing.T) {
	manager, users, notifications, content := newTestManager()

	other := "eeeeeeeeeeeeeeeeeeeeeeee"

	content.On("CampaignExists", mock.Anything, campaignID).Return(true, nil).Once()
	users.On("GetUserCard", mock.Anything, senderID).Return(models.UserCard{ID: senderID, FullName: "Ada"}, nil).Once()
	users.On("GetUser", mock.Anything, receiverID).Return(models.User{ID: receiverID}, nil).Once()
	users.On("GetUser", mock.Anything, other).Return(models.User{ID: other}, nil).Once()
	notifications.On("Append", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Type == models.NotificationConnectedToCampaign && n.CampaignID != nil && *n.CampaignID == campaignID
	})).Return(nil).Twice()
	notifications.On("CountUnseen", mock.Anything, receiverID).Return(1, nil).Once()
	notifications.On("CountUnseen", mock.Anything, other).Return(2, nil).Once()

	views, err := manager.ConnectToCampaign(context.Background(), senderID, campaignID, []string{receiverID, other})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, receiverID, views[0].ReceiverID)
	assert.Equal(t, other, views[1].ReceiverID)
	assert.Equal(t, "Ada connected you to the campaign.", views[0].Message)

	users.AssertExpectations(t)
	notifications.AssertExpectations(t)
	content.AssertExpectations(t)
}

func TestConnectToCampaignUnknownCampaign(t *testing.T) {
	manager, _, _, content := newTestManager()

	content.On("CampaignExists", mock.Anything, campaignID).Return(false, nil).Once()

	_, err := manager.ConnectToCampaign(context.Background(), senderID, campaignID, []string{receiverID})
	assert.ErrorIs(t, err, repositories.ErrCampaignNotFound)
	content.AssertExpectations(t)
}

func TestConnectToPostNoReceivers(t *testing.T) {
	manager, _, _, content := newTestManager()

	content.On("PostExists", mock.Anything, postID).Return(true, nil).Once()

	_, err := manager.ConnectToPost(context.Background(), senderID, postID, nil)
	assert.Error(t, err)
}

func TestConnectToPostBadReceiverID(t *testing.T) {
	manager, _, _, content := newTestManager()

	content.On("PostExists", mock.Anything, postID).Return(true, nil).Once()

	_, err := manager.ConnectToPost(context.Background(), senderID, postID, []string{"nope"})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestConnectToPostInvalidPostID(t *testing.T) {
	manager, _, _, _ := newTestManager()

	_, err := manager.ConnectToPost(context.Background(), senderID, "bad", []string{receiverID})
	assert.ErrorIs(t, err, ErrInvalidID)
}
