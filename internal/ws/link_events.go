package ws

import (
	"context"
	"encoding/json"
	"errors"

	"social-service/internal/observability"
)

var errUnknownEvent = errors.New("unknown event")

// pushNotification attempts live delivery and records whether the receiver
// was online. A miss only costs immediacy; the log already holds the record.
func pushNotification(hub *Hub, receiverID string, view any) {
	if hub.DeliverToUser(receiverID, PushNotification, view) > 0 {
		observability.IncNotificationDelivered("pushed")
	} else {
		observability.IncNotificationDelivered("stored")
	}
}

// addFriend sends a link request and pushes the notification to the receiver
// if present. The ack carries the notification payload back to the sender.
func (h *SocketHandler) addFriend(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req addFriendRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.ReceiverID == "" {
		return nil, errors.New("receiver_id is required")
	}

	view, err := h.manager.SendRequest(ctx, client.UserID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	pushNotification(h.hub, view.ReceiverID, view)
	return view, nil
}

// acceptFriend promotes the pending request and pushes the acceptance
// notification to the original sender if present.
func (h *SocketHandler) acceptFriend(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req acceptFriendRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.SenderID == "" {
		return nil, errors.New("sender_id is required")
	}

	view, err := h.manager.AcceptRequest(ctx, client.UserID, req.SenderID)
	if err != nil {
		return nil, err
	}
	pushNotification(h.hub, view.ReceiverID, view)
	return view, nil
}

// rejectFriend drops the pending request. Nothing is pushed to anyone.
func (h *SocketHandler) rejectFriend(ctx context.Context, client *Client, raw json.RawMessage) error {
	var req rejectFriendRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return err
	}
	if req.SenderID == "" {
		return errors.New("sender_id is required")
	}
	return h.manager.RejectRequest(ctx, client.UserID, req.SenderID)
}

func (h *SocketHandler) loadNotifications(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req loadNotificationsRequest
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, err
		}
	}
	return h.manager.ListNotifications(ctx, client.UserID, req.Skip, req.Limit)
}

func (h *SocketHandler) seenNotification(ctx context.Context, raw json.RawMessage) error {
	var req seenNotificationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return err
	}
	if req.NotificationID == "" {
		return errors.New("notification_id is required")
	}
	return h.manager.MarkNotificationSeen(ctx, req.NotificationID)
}

// connectToCampaign notifies every receiver, pushing to those present.
func (h *SocketHandler) connectToCampaign(ctx context.Context, client *Client, raw json.RawMessage) error {
	var req connectToCampaignRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return err
	}
	if req.CampaignID == "" {
		return errors.New("campaign_id is required")
	}

	views, err := h.manager.ConnectToCampaign(ctx, client.UserID, req.CampaignID, req.Receivers)
	if err != nil {
		return err
	}
	for _, view := range views {
		pushNotification(h.hub, view.ReceiverID, view)
	}
	return nil
}

// connectToPost is the post-flavored counterpart of connectToCampaign.
func (h *SocketHandler) connectToPost(ctx context.Context, client *Client, raw json.RawMessage) error {
	var req connectToPostRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return err
	}
	if req.PostID == "" {
		return errors.New("post_id is required")
	}

	views, err := h.manager.ConnectToPost(ctx, client.UserID, req.PostID, req.Receivers)
	if err != nil {
		return err
	}
	for _, view := range views {
		pushNotification(h.hub, view.ReceiverID, view)
	}
	return nil
}
