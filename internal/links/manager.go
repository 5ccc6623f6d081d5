package links

import (
	"context"
	"errors"
	"fmt"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

var (
	// ErrInvalidID is returned before any store access when an identifier
	// does not have the 24-character store format.
	ErrInvalidID = errors.New("invalid id: identifiers must be 24 characters")

	ErrSelfRequest    = errors.New("cannot send a link request to yourself")
	ErrAlreadyLinked  = errors.New("users are already linked")
	ErrRequestPending = errors.New("a link request between these users is already pending")

	// ErrNoPendingRequest is returned on accept/reject when the symmetric
	// pending pair does not exist.
	ErrNoPendingRequest = errors.New("invalid request: the sender has not sent a request to you")
)

// Manager drives the friend-link lifecycle: send, accept, and reject of
// pending requests, plus the connect-to-content notifications. Every
// successful transition appends to the notification log and returns the
// payload the delivery gateway pushes to the affected user.
type Manager struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	content       repositories.ContentRepository
}

// NewManager constructs a Manager.
func NewManager(users repositories.UserRepository, notifications repositories.NotificationRepository, content repositories.ContentRepository) *Manager {
	return &Manager{users: users, notifications: notifications, content: content}
}

// SendRequest records a pending request from sender to receiver and returns
// the notification payload addressed to the receiver.
//
// A request is refused when the two users already stand in any relation:
// linked, or a pending request in either direction.
func (m *Manager) SendRequest(ctx context.Context, senderID, receiverID string) (models.NotificationView, error) {
	if !models.ValidID(receiverID) {
		return models.NotificationView{}, ErrInvalidID
	}
	if senderID == receiverID {
		return models.NotificationView{}, ErrSelfRequest
	}

	sender, err := m.users.GetUserCard(ctx, senderID)
	if err != nil {
		return models.NotificationView{}, err
	}
	receiver, err := m.users.GetUser(ctx, receiverID)
	if err != nil {
		return models.NotificationView{}, err
	}

	rel, err := m.users.GetRelation(ctx, senderID, receiverID)
	if err != nil {
		return models.NotificationView{}, err
	}
	if rel.Linked {
		return models.NotificationView{}, ErrAlreadyLinked
	}
	if rel.PendingOut || rel.PendingIn {
		return models.NotificationView{}, ErrRequestPending
	}

	req := models.LinkRequest{
		ID:           models.NewID(),
		SenderID:     senderID,
		SenderName:   sender.FullName,
		ReceiverID:   receiverID,
		ReceiverName: receiver.FullName,
	}
	if err := m.users.CreateLinkRequest(ctx, req); err != nil {
		return models.NotificationView{}, err
	}

	message := fmt.Sprintf("%s sent you a friend request.", sender.FullName)
	return m.appendAndBuild(ctx, models.Notification{
		ID:         models.NewID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       models.NotificationLinkRequested,
		Message:    message,
	}, sender)
}

// AcceptRequest promotes the pending request from sender to accepter into a
// mutual link and returns the notification payload addressed to the sender.
func (m *Manager) AcceptRequest(ctx context.Context, accepterID, senderID string) (models.NotificationView, error) {
	if !models.ValidID(senderID) {
		return models.NotificationView{}, ErrInvalidID
	}

	accepter, err := m.users.GetUserCard(ctx, accepterID)
	if err != nil {
		return models.NotificationView{}, err
	}
	if _, err := m.users.GetUser(ctx, senderID); err != nil {
		return models.NotificationView{}, err
	}

	req, err := m.users.GetPendingRequest(ctx, senderID, accepterID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return models.NotificationView{}, ErrNoPendingRequest
		}
		return models.NotificationView{}, err
	}

	if err := m.users.PromoteToLink(ctx, req); err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return models.NotificationView{}, ErrNoPendingRequest
		}
		return models.NotificationView{}, err
	}

	message := fmt.Sprintf("%s accepted your friend request.", accepter.FullName)
	return m.appendAndBuild(ctx, models.Notification{
		ID:         models.NewID(),
		SenderID:   accepterID,
		ReceiverID: senderID,
		Type:       models.NotificationLinkAccepted,
		Message:    message,
	}, accepter)
}

// RejectRequest removes the pending request from sender to rejecter. No link
// is created and no notification is written.
func (m *Manager) RejectRequest(ctx context.Context, rejecterID, senderID string) error {
	if !models.ValidID(senderID) {
		return ErrInvalidID
	}

	if _, err := m.users.GetUser(ctx, senderID); err != nil {
		return err
	}

	req, err := m.users.GetPendingRequest(ctx, senderID, rejecterID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return ErrNoPendingRequest
		}
		return err
	}

	if err := m.users.RemoveRequest(ctx, req.ID); err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return ErrNoPendingRequest
		}
		return err
	}
	return nil
}

// appendAndBuild writes the notification and assembles the push payload with
// the receiver's current unseen count.
func (m *Manager) appendAndBuild(ctx context.Context, n models.Notification, sender models.UserCard) (models.NotificationView, error) {
	if err := m.notifications.Append(ctx, n); err != nil {
		return models.NotificationView{}, err
	}
	unseen, err := m.notifications.CountUnseen(ctx, n.ReceiverID)
	if err != nil {
		return models.NotificationView{}, err
	}
	return models.NotificationView{
		ID:               n.ID,
		Sender:           sender,
		Type:             n.Type,
		PostID:           n.PostID,
		CampaignID:       n.CampaignID,
		CommentID:        n.CommentID,
		Message:          n.Message,
		NewNotifications: unseen,
		ReceiverID:       n.ReceiverID,
	}, nil
}
