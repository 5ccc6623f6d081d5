package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository manages direct and group chat channels.
type ConversationRepository interface {
	GetConversation(ctx context.Context, conversationID string) (models.Conversation, error)
	GetOrCreateDirect(ctx context.Context, userID, otherID string) (models.Conversation, error)
	CreateGroup(ctx context.Context, id, name, adminID string, memberIDs []string) (models.Conversation, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	ListMembers(ctx context.Context, conversationID string) ([]string, error)
	IsMember(ctx context.Context, conversationID, userID string) (bool, error)
	TouchLastMessaged(ctx context.Context, conversationID string) error
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// GetConversation fetches a conversation by id.
func (r *ConversationRepo) GetConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT id, type, room, admin_id, last_messaged_at, created_at FROM conversations WHERE id=$1`,
		conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrConversationNotFound
	}
	return conv, err
}

// GetOrCreateDirect returns the direct conversation between two users,
// creating it on first contact. Creation is idempotent per unordered pair.
func (r *ConversationRepo) GetOrCreateDirect(ctx context.Context, userID, otherID string) (models.Conversation, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT c.id, c.type, c.room, c.admin_id, c.last_messaged_at, c.created_at
         FROM conversations c
         WHERE c.type='dm'
           AND EXISTS(SELECT 1 FROM conversation_members WHERE conversation_id=c.id AND user_id=$1)
           AND EXISTS(SELECT 1 FROM conversation_members WHERE conversation_id=c.id AND user_id=$2)`,
		userID, otherID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Conversation{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	id := models.NewID()
	if err = tx.QueryRowxContext(ctx,
		`INSERT INTO conversations (id, type) VALUES ($1, 'dm')
         RETURNING id, type, room, admin_id, last_messaged_at, created_at`, id).
		StructScan(&conv); err != nil {
		return models.Conversation{}, err
	}
	for _, member := range []string{userID, otherID} {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO conversation_members (conversation_id, user_id) VALUES ($1, $2)`, id, member); err != nil {
			return models.Conversation{}, err
		}
	}
	if err = tx.Commit(); err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

// CreateGroup creates a named group conversation with its members atomically.
// The admin is always a member.
func (r *ConversationRepo) CreateGroup(ctx context.Context, id, name, adminID string, memberIDs []string) (conv models.Conversation, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Conversation{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = tx.QueryRowxContext(ctx,
		`INSERT INTO conversations (id, type, room, admin_id) VALUES ($1, 'gm', $2, $3)
         RETURNING id, type, room, admin_id, last_messaged_at, created_at`, id, name, adminID).
		StructScan(&conv); err != nil {
		return models.Conversation{}, err
	}

	memberSet := map[string]struct{}{adminID: {}}
	for _, m := range memberIDs {
		memberSet[m] = struct{}{}
	}
	for member := range memberSet {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO conversation_members (conversation_id, user_id) VALUES ($1, $2)`, id, member); err != nil {
			return models.Conversation{}, err
		}
	}

	err = tx.Commit()
	return conv, err
}

// ListGroupsForUser returns group conversations that include the user.
func (r *ConversationRepo) ListGroupsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.SelectContext(ctx, &convs,
		`SELECT c.id, c.type, c.room, c.admin_id, c.last_messaged_at, c.created_at
         FROM conversations c
         INNER JOIN conversation_members cm ON cm.conversation_id = c.id
         WHERE c.type='gm' AND cm.user_id=$1
         ORDER BY c.created_at DESC`, userID)
	return convs, err
}

// ListMembers returns the member ids of a conversation.
func (r *ConversationRepo) ListMembers(ctx context.Context, conversationID string) ([]string, error) {
	var members []string
	err := r.db.SelectContext(ctx, &members,
		`SELECT user_id FROM conversation_members WHERE conversation_id=$1`, conversationID)
	return members, err
}

// IsMember checks membership.
func (r *ConversationRepo) IsMember(ctx context.Context, conversationID, userID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM conversation_members WHERE conversation_id=$1 AND user_id=$2)`,
		conversationID, userID)
	return exists, err
}

// TouchLastMessaged bumps the conversation's last-activity timestamp.
func (r *ConversationRepo) TouchLastMessaged(ctx context.Context, conversationID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE conversations SET last_messaged_at = NOW() WHERE id=$1`, conversationID)
	return err
}
