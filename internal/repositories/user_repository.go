package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("link request not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// UserRepository is the identity and link store: accounts plus the mirrored
// links / pending-request sets the lifecycle manager mutates.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserCard(ctx context.Context, userID string) (models.UserCard, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.UserCard, error)

	ListLinks(ctx context.Context, userID string) ([]models.Link, error)
	ListOutgoingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error)
	ListIncomingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error)

	GetRelation(ctx context.Context, userID, otherID string) (models.Relation, error)
	CreateLinkRequest(ctx context.Context, req models.LinkRequest) error
	GetPendingRequest(ctx context.Context, senderID, receiverID string) (models.LinkRequest, error)
	PromoteToLink(ctx context.Context, req models.LinkRequest) error
	RemoveRequest(ctx context.Context, requestID string) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new account.
func (r *UserRepo) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, email, password_hash, profile_pic) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.ProfilePic)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// GetUser fetches an account by id.
func (r *UserRepo) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, full_name, email, password_hash, profile_pic, created_at FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByEmail fetches an account by email for login.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, full_name, email, password_hash, profile_pic, created_at FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserCard returns the compact identity view used in notification payloads.
func (r *UserRepo) GetUserCard(ctx context.Context, userID string) (models.UserCard, error) {
	var card models.UserCard
	err := r.db.GetContext(ctx, &card,
		`SELECT id, full_name, profile_pic FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserCard{}, ErrUserNotFound
	}
	return card, err
}

// SearchUsers finds users whose name matches the query prefix.
func (r *UserRepo) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserCard, error) {
	var cards []models.UserCard
	err := r.db.SelectContext(ctx, &cards,
		`SELECT id, full_name, profile_pic FROM users WHERE full_name ILIKE $1 || '%' ORDER BY full_name LIMIT $2`,
		query, limit)
	return cards, err
}

// ListLinks returns the user's accepted friends.
func (r *UserRepo) ListLinks(ctx context.Context, userID string) ([]models.Link, error) {
	var links []models.Link
	err := r.db.SelectContext(ctx, &links,
		`SELECT user_id, friend_id, friend_name, created_at FROM user_links WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
	return links, err
}

// ListOutgoingRequests returns requests the user has sent and that are still pending.
func (r *UserRepo) ListOutgoingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error) {
	var reqs []models.LinkRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT id, sender_id, receiver_id, sender_name, receiver_name, created_at
         FROM link_requests WHERE sender_id=$1 ORDER BY created_at DESC`, userID)
	return reqs, err
}

// ListIncomingRequests returns pending requests addressed to the user.
func (r *UserRepo) ListIncomingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error) {
	var reqs []models.LinkRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT id, sender_id, receiver_id, sender_name, receiver_name, created_at
         FROM link_requests WHERE receiver_id=$1 ORDER BY created_at DESC`, userID)
	return reqs, err
}

// GetRelation reports how two users currently stand to each other.
func (r *UserRepo) GetRelation(ctx context.Context, userID, otherID string) (models.Relation, error) {
	var rel models.Relation
	err := r.db.QueryRowxContext(ctx,
		`SELECT
            EXISTS(SELECT 1 FROM user_links WHERE user_id=$1 AND friend_id=$2),
            EXISTS(SELECT 1 FROM link_requests WHERE sender_id=$1 AND receiver_id=$2),
            EXISTS(SELECT 1 FROM link_requests WHERE sender_id=$2 AND receiver_id=$1)`,
		userID, otherID).Scan(&rel.Linked, &rel.PendingOut, &rel.PendingIn)
	return rel, err
}

// CreateLinkRequest records a new pending request. The unique constraint on
// (sender_id, receiver_id) makes a double send a no-op at the storage level
// even when two handlers race past the relation check.
func (r *UserRepo) CreateLinkRequest(ctx context.Context, req models.LinkRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO link_requests (id, sender_id, receiver_id, sender_name, receiver_name)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (sender_id, receiver_id) DO NOTHING`,
		req.ID, req.SenderID, req.ReceiverID, req.SenderName, req.ReceiverName)
	return err
}

// GetPendingRequest looks up the pending request for the ordered pair.
func (r *UserRepo) GetPendingRequest(ctx context.Context, senderID, receiverID string) (models.LinkRequest, error) {
	var req models.LinkRequest
	err := r.db.GetContext(ctx, &req,
		`SELECT id, sender_id, receiver_id, sender_name, receiver_name, created_at
         FROM link_requests WHERE sender_id=$1 AND receiver_id=$2`, senderID, receiverID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LinkRequest{}, ErrRequestNotFound
	}
	return req, err
}

// PromoteToLink removes the pending request and creates both link rows in a
// single transaction, so the pair update is all-or-nothing.
func (r *UserRepo) PromoteToLink(ctx context.Context, req models.LinkRequest) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM link_requests WHERE id=$1`, req.ID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		err = ErrRequestNotFound
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_links (user_id, friend_id, friend_name) VALUES ($1, $2, $3)`,
		req.SenderID, req.ReceiverID, req.ReceiverName); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_links (user_id, friend_id, friend_name) VALUES ($1, $2, $3)`,
		req.ReceiverID, req.SenderID, req.SenderName); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

// RemoveRequest deletes a pending request on reject.
func (r *UserRepo) RemoveRequest(ctx context.Context, requestID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM link_requests WHERE id=$1`, requestID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	type coder interface{ SQLState() string }
	var pqErr coder
	if errors.As(err, &pqErr) {
		return pqErr.SQLState() == "23505"
	}
	return false
}
