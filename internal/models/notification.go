package models

import "time"

// Notification types. The set is fixed; anything else is rejected at the
// storage boundary by the notifications table constraint.
const (
	NotificationLinkRequested          = "link_requested"
	NotificationLinkAccepted           = "link_accepted"
	NotificationConnectedToCampaign    = "connected_to_campaign"
	NotificationConnectedToPost        = "connected_to_post"
	NotificationCommentedOnPost        = "commented_on_post"
	NotificationCommentedOnCampaign    = "commented_on_campaign"
	NotificationRepliedOnPost          = "replied_on_post"
	NotificationRepliedOnCampaign      = "replied_on_campaign"
	NotificationRepliedToPostComment   = "replied_to_comment_on_post"
	NotificationRepliedToCampComment   = "replied_to_comment_on_campaign"
)

// Notification is a durable record of an event directed at one user.
// Only IsSeen ever changes after creation.
type Notification struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"-"`
	Type       string    `db:"type" json:"type"`
	PostID     *string   `db:"post_id" json:"post_id,omitempty"`
	CampaignID *string   `db:"campaign_id" json:"campaign_id,omitempty"`
	CommentID  *string   `db:"comment_id" json:"comment_id,omitempty"`
	Message    string    `db:"message" json:"message"`
	IsSeen     bool      `db:"is_seen" json:"is_seen"`
	CreatedAt  time.Time `db:"created_at" json:"date"`
}

// NotificationView is a notification joined with its sender's card, the shape
// pushed over the socket and returned from the list endpoints.
type NotificationView struct {
	ID         string    `json:"id"`
	Sender     UserCard  `json:"sender"`
	Type       string    `json:"type"`
	PostID     *string   `json:"post_id,omitempty"`
	CampaignID *string   `json:"campaign_id,omitempty"`
	CommentID  *string   `json:"comment_id,omitempty"`
	Message    string    `json:"message"`
	IsSeen     bool      `json:"is_seen"`
	Date       time.Time `json:"date"`

	// NewNotifications is the receiver's unseen count at the time the view
	// was built. ReceiverID is used for fan-out only and never serialized.
	NewNotifications int    `json:"new_notifications"`
	ReceiverID       string `json:"-"`
}

// NotificationPage is one page of a user's notification log.
type NotificationPage struct {
	Notifications    []NotificationView `json:"notifications"`
	Total            int                `json:"total"`
	NewNotifications int                `json:"new_notifications"`
	NextSkip         *int               `json:"next_skip"`
}

// NextSkip derives the cursor for the following page. It is nil exactly when
// skip+limit reaches the total, which ends the pagination.
func NextSkip(skip, limit, total int) *int {
	next := skip + limit
	if next >= total {
		return nil
	}
	return &next
}
