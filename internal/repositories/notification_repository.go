package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository is the append-only notification log.
type NotificationRepository interface {
	Append(ctx context.Context, n models.Notification) error
	ListForUser(ctx context.Context, userID string, skip, limit int) ([]models.NotificationView, int, error)
	CountUnseen(ctx context.Context, userID string) (int, error)
	MarkSeen(ctx context.Context, notificationID string) error
	DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error)
}

// NotificationRepo is a sqlx implementation of NotificationRepository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Append stores a notification.
func (r *NotificationRepo) Append(ctx context.Context, n models.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, sender_id, receiver_id, type, post_id, campaign_id, comment_id, message)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.SenderID, n.ReceiverID, n.Type, n.PostID, n.CampaignID, n.CommentID, n.Message)
	return err
}

// ListForUser returns one page of the user's notifications, newest-first,
// each joined with the sender's card, plus the total count.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, skip, limit int) ([]models.NotificationView, int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT n.id, n.type, n.post_id, n.campaign_id, n.comment_id, n.message, n.is_seen, n.created_at,
                u.id AS sender_id, u.full_name, u.profile_pic
         FROM notifications n
         INNER JOIN users u ON u.id = n.sender_id
         WHERE n.receiver_id=$1
         ORDER BY n.created_at DESC, n.id DESC
         OFFSET $2 LIMIT $3`, userID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var views []models.NotificationView
	for rows.Next() {
		var v models.NotificationView
		if err := rows.Scan(&v.ID, &v.Type, &v.PostID, &v.CampaignID, &v.CommentID, &v.Message, &v.IsSeen, &v.Date,
			&v.Sender.ID, &v.Sender.FullName, &v.Sender.ProfilePic); err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM notifications WHERE receiver_id=$1`, userID); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// CountUnseen counts the user's unseen notifications.
func (r *NotificationRepo) CountUnseen(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE receiver_id=$1 AND is_seen = FALSE`, userID)
	return count, err
}

// MarkSeen flips the seen flag. The flag only ever goes from false to true.
func (r *NotificationRepo) MarkSeen(ctx context.Context, notificationID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_seen = TRUE WHERE id=$1`, notificationID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteOlderThan removes notifications past the retention horizon.
func (r *NotificationRepo) DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE created_at < $1`, time.Now().Add(-horizon))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
