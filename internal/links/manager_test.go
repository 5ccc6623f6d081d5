package links

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

const (
	senderID   = "aaaaaaaaaaaaaaaaaaaaaaaa"
	receiverID = "bbbbbbbbbbbbbbbbbbbbbbbb"
)

func newTestManager() (*Manager, *mocks.UserRepositoryMock, *mocks.NotificationRepositoryMock, *mocks.ContentRepositoryMock) {
	users := new(mocks.UserRepositoryMock)
	notifications := new(mocks.NotificationRepositoryMock)
	content := new(mocks.ContentRepositoryMock)
	return NewManager(users, notifications, content), users, notifications, content
}

func TestSendRequestSuccess(t *testing.T) {
	manager, users, notifications, _ := newTestManager()

	users.On("GetUserCard", mock.Anything, senderID).Return(models.UserCard{ID: senderID, FullName: "Ada"}, nil).Once()
	users.On("GetUser", mock.Anything, receiverID).Return(models.User{ID: receiverID, FullName: "Bob"}, nil).Once()
	users.On("GetRelation", mock.Anything, senderID, receiverID).Return(models.Relation{}, nil).Once()
	users.On("CreateLinkRequest", mock.Anything, mock.MatchedBy(func(req models.LinkRequest) bool {
		return req.SenderID == senderID && req.ReceiverID == receiverID && models.ValidID(req.ID)
	})).Return(nil).Once()
	notifications.On("Append", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Type == models.NotificationLinkRequested && n.ReceiverID == receiverID
	})).Return(nil).Once()
	notifications.On("CountUnseen", mock.Anything, receiverID).Return(3, nil).Once()

	view, err := manager.SendRequest(context.Background(), senderID, receiverID)
	require.NoError(t, err)
	assert.Equal(t, receiverID, view.ReceiverID)
	assert.Equal(t, "Ada sent you a friend request.", view.Message)
	assert.Equal(t, 3, view.NewNotifications)
	assert.Equal(t, "Ada", view.Sender.FullName)

	users.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestSendRequestInvalidReceiverID(t *testing.T) {
	manager, _, _, _ := newTestManager()

	_, err := manager.SendRequest(context.Background(), senderID, "short")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSendRequestToSelf(t *testing.T) {
	manager, _, _, _ := newTestManager()

	_, err := manager.SendRequest(context.Background(), senderID, senderID)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequestReceiverMissing(t *testing.T) {
	manager, users, _, _ := newTestManager()

	users.On("GetUserCard", mock.Anything, senderID).Return(models.UserCard{ID: senderID, FullName: "Ada"}, nil).Once()
	users.On("GetUser", mock.Anything, receiverID).Return(models.User{}, repositories.ErrUserNotFound).Once()

	_, err := manager.SendRequest(context.Background(), senderID, receiverID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	users.AssertExpectations(t)
}

func TestSendRequestAlreadyLinked(t *testing.T) {
	manager, users, _, _ := newTestManager()

	users.On("GetUserCard", mock.Anything, senderID).Return(models.UserCard{ID: senderID, FullName: "Ada"}, nil).Once()
	users.On("GetUser", mock.Anything, receiverID).Return(models.User{ID: receiverID}, nil).Once()
	users.On("GetRelation", mock.Anything, senderID, receiverID).Return(models.Relation{Linked: true}, nil).Once()

	_, err := manager.SendRequest(context.Background(), senderID, receiverID)
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	users.AssertExpectations(t)
}

func TestSendRequestPendingEitherDirection(t *testing.T) {
	for _, rel := range []models.Relation{{PendingOut: true}, {PendingIn: true}} {
		manager, users, _, _ := newTestManager()

		users.On("GetUserCard", mock.Anything, senderID).Return(models.UserCard{ID: senderID, FullName: "Ada"}, nil).Once()
		users.On("GetUser", mock.Anything, receiverID).Return(models.User{ID: receiverID}, nil).Once()
		users.On("GetRelation", mock.Anything, senderID, receiverID).Return(rel, nil).Once()

		_, err := manager.SendRequest(context.Background(), senderID, receiverID)
		assert.ErrorIs(t, err, ErrRequestPending)
		users.AssertExpectations(t)
	}
}

func TestAcceptRequestSuccess(t *testing.T) {
	manager, users, notifications, _ := newTestManager()

	pending := models.LinkRequest{
		ID:           models.NewID(),
		SenderID:     senderID,
		SenderName:   "Ada",
		ReceiverID:   receiverID,
		ReceiverName: "Bob",
	}

	users.On("GetUserCard", mock.Anything, receiverID).Return(models.UserCard{ID: receiverID, FullName: "Bob"}, nil).Once()
	users.On("GetUser", mock.Anything, senderID).Return(models.User{ID: senderID, FullName: "Ada"}, nil).Once()
	users.On("GetPendingRequest", mock.Anything, senderID, receiverID).Return(pending, nil).Once()
	users.On("PromoteToLink", mock.Anything, pending).Return(nil).Once()
	notifications.On("Append", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Type == models.NotificationLinkAccepted && n.ReceiverID == senderID
	})).Return(nil).Once()
	notifications.On("CountUnseen", mock.Anything, senderID).Return(1, nil).Once()

	view, err := manager.AcceptRequest(context.Background(), receiverID, senderID)
	require.NoError(t, err)
	assert.Equal(t, senderID, view.ReceiverID)
	assert.Equal(t, "Bob accepted your friend request.", view.Message)

	users.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestAcceptRequestNoPending(t *testing.T) {
	manager, users, _, _ := newTestManager()

	users.On("GetUserCard", mock.Anything, receiverID).Return(models.UserCard{ID: receiverID, FullName: "Bob"}, nil).Once()
	users.On("GetUser", mock.Anything, senderID).Return(models.User{ID: senderID}, nil).Once()
	users.On("GetPendingRequest", mock.Anything, senderID, receiverID).Return(models.LinkRequest{}, repositories.ErrRequestNotFound).Once()

	_, err := manager.AcceptRequest(context.Background(), receiverID, senderID)
	assert.ErrorIs(t, err, ErrNoPendingRequest)
	users.AssertExpectations(t)
}

func TestAcceptRequestLostRace(t *testing.T) {
	manager, users, _, _ := newTestManager()

	pending := models.LinkRequest{ID: models.NewID(), SenderID: senderID, ReceiverID: receiverID}

	users.On("GetUserCard", mock.Anything, receiverID).Return(models.UserCard{ID: receiverID, FullName: "Bob"}, nil).Once()
	users.On("GetUser", mock.Anything, senderID).Return(models.User{ID: senderID}, nil).Once()
	users.On("GetPendingRequest", mock.Anything, senderID, receiverID).Return(pending, nil).Once()
	users.On("PromoteToLink", mock.Anything, pending).Return(repositories.ErrRequestNotFound).Once()

	_, err := manager.AcceptRequest(context.Background(), receiverID, senderID)
	assert.ErrorIs(t, err, ErrNoPendingRequest)
	users.AssertExpectations(t)
}

func TestRejectRequestSuccess(t *testing.T) {
	manager, users, notifications, _ := newTestManager()

	pending := models.LinkRequest{ID: models.NewID(), SenderID: senderID, ReceiverID: receiverID}

	users.On("GetUser", mock.Anything, senderID).Return(models.User{ID: senderID}, nil).Once()
	users.On("GetPendingRequest", mock.Anything, senderID, receiverID).Return(pending, nil).Once()
	users.On("RemoveRequest", mock.Anything, pending.ID).Return(nil).Once()

	err := manager.RejectRequest(context.Background(), receiverID, senderID)
	require.NoError(t, err)

	users.AssertExpectations(t)
	// A reject never writes to the notification log.
	notifications.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRejectRequestNoPending(t *testing.T) {
	manager, users, _, _ := newTestManager()

	users.On("GetUser", mock.Anything, senderID).Return(models.User{ID: senderID}, nil).Once()
	users.On("GetPendingRequest", mock.Anything, senderID, receiverID).Return(models.LinkRequest{}, repositories.ErrRequestNotFound).Once()

	err := manager.RejectRequest(context.Background(), receiverID, senderID)
	assert.ErrorIs(t, err, ErrNoPendingRequest)
	users.AssertExpectations(t)
}
