package links

import (
	"context"
	"errors"
	"fmt"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

// ConnectToCampaign notifies each receiver that the sender connected them to
// the campaign. One notification payload per receiver is returned for fan-out.
func (m *Manager) ConnectToCampaign(ctx context.Context, senderID, campaignID string, receiverIDs []string) ([]models.NotificationView, error) {
	if !models.ValidID(campaignID) {
		return nil, ErrInvalidID
	}
	exists, err := m.content.CampaignExists(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrCampaignNotFound
	}

	ref := campaignID
	return m.connect(ctx, senderID, receiverIDs, func(senderName string) models.Notification {
		return models.Notification{
			SenderID:   senderID,
			Type:       models.NotificationConnectedToCampaign,
			CampaignID: &ref,
			Message:    fmt.Sprintf("%s connected you to the campaign.", senderName),
		}
	})
}

// ConnectToPost is the post-flavored counterpart of ConnectToCampaign.
func (m *Manager) ConnectToPost(ctx context.Context, senderID, postID string, receiverIDs []string) ([]models.NotificationView, error) {
	if !models.ValidID(postID) {
		return nil, ErrInvalidID
	}
	exists, err := m.content.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrPostNotFound
	}

	ref := postID
	return m.connect(ctx, senderID, receiverIDs, func(senderName string) models.Notification {
		return models.Notification{
			SenderID:   senderID,
			Type:       models.NotificationConnectedToPost,
			PostID:     &ref,
			Message:    fmt.Sprintf("%s connected you to the post.", senderName),
		}
	})
}

func (m *Manager) connect(ctx context.Context, senderID string, receiverIDs []string, build func(senderName string) models.Notification) ([]models.NotificationView, error) {
	if len(receiverIDs) == 0 {
		return nil, errors.New("at least one receiver is required")
	}
	for _, id := range receiverIDs {
		if !models.ValidID(id) {
			return nil, ErrInvalidID
		}
	}

	sender, err := m.users.GetUserCard(ctx, senderID)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(receiverIDs))
	for _, receiverID := range receiverIDs {
		if _, err := m.users.GetUser(ctx, receiverID); err != nil {
			return nil, err
		}
		n := build(sender.FullName)
		n.ID = models.NewID()
		n.ReceiverID = receiverID
		view, err := m.appendAndBuild(ctx, n, sender)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
