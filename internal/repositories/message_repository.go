package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"social-service/internal/models"
)

// MessageRepository stores chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, conversationID, senderID, text string, files []string) (models.Message, error)
	ListMessages(ctx context.Context, conversationID string, skip, limit int) ([]models.Message, int, error)
	DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage persists a message with text, files, or both.
func (r *MessageRepo) CreateMessage(ctx context.Context, conversationID, senderID, text string, files []string) (models.Message, error) {
	if files == nil {
		files = []string{}
	}
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, text, files) VALUES ($1, $2, $3, $4, $5)
         RETURNING id, conversation_id, sender_id, text, files, created_at`,
		models.NewID(), conversationID, senderID, text, pq.Array(files)).
		Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Text, &msg.Files, &msg.CreatedAt)
	return msg, err
}

// ListMessages returns one page of a conversation's history, newest-first,
// plus the total count.
func (r *MessageRepo) ListMessages(ctx context.Context, conversationID string, skip, limit int) ([]models.Message, int, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, conversation_id, sender_id, text, files, created_at
         FROM messages WHERE conversation_id=$1
         ORDER BY created_at DESC, id DESC
         OFFSET $2 LIMIT $3`, conversationID, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM messages WHERE conversation_id=$1`, conversationID); err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

// DeleteOlderThan removes messages past the retention horizon.
func (r *MessageRepo) DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE created_at < $1`, time.Now().Add(-horizon))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
