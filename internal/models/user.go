package models

import "time"

// User is a registered account.
type User struct {
	ID           string    `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	ProfilePic   string    `db:"profile_pic" json:"profile_pic"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserCard is the compact identity view embedded in notifications and
// conversation member lists.
type UserCard struct {
	ID         string `db:"id" json:"id"`
	FullName   string `db:"full_name" json:"full_name"`
	ProfilePic string `db:"profile_pic" json:"profile_pic"`
}

// Link is an accepted, mutual friendship. Every link is stored twice,
// once per direction, so both sides can list their friends with one query.
type Link struct {
	UserID     string    `db:"user_id" json:"-"`
	FriendID   string    `db:"friend_id" json:"friend_id"`
	FriendName string    `db:"friend_name" json:"friend_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LinkRequest is a pending friend request. A single row represents both the
// sender's outgoing entry and the receiver's incoming entry, which keeps the
// two views symmetric by construction.
type LinkRequest struct {
	ID           string    `db:"id" json:"id"`
	SenderID     string    `db:"sender_id" json:"sender_id"`
	SenderName   string    `db:"sender_name" json:"sender_name"`
	ReceiverID   string    `db:"receiver_id" json:"receiver_id"`
	ReceiverName string    `db:"receiver_name" json:"receiver_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Relation summarizes how two users currently stand to each other.
type Relation struct {
	Linked     bool
	PendingOut bool
	PendingIn  bool
}

// None reports whether no link or pending request exists in either direction.
func (r Relation) None() bool {
	return !r.Linked && !r.PendingOut && !r.PendingIn
}
