package models

import (
	"time"

	"github.com/lib/pq"
)

// Conversation kinds.
const (
	ConversationDirect = "dm"
	ConversationGroup  = "gm"
)

// Conversation is a chat channel: direct (exactly two members) or group
// (named, with an admin).
type Conversation struct {
	ID             string     `db:"id" json:"id"`
	Type           string     `db:"type" json:"type"`
	Room           *string    `db:"room" json:"room,omitempty"`
	AdminID        *string    `db:"admin_id" json:"admin_id,omitempty"`
	LastMessagedAt *time.Time `db:"last_messaged_at" json:"last_messaged_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// ConversationView is a conversation with its members resolved to user cards.
type ConversationView struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	GroupName string     `json:"group_name,omitempty"`
	Admin     *UserCard  `json:"admin,omitempty"`
	Members   []UserCard `json:"members"`
}

// Message belongs to one conversation and carries text, files, or both.
type Message struct {
	ID             string         `db:"id" json:"id"`
	ConversationID string         `db:"conversation_id" json:"conversation_id"`
	SenderID       string         `db:"sender_id" json:"sender_id"`
	Text           string         `db:"text" json:"text,omitempty"`
	Files          pq.StringArray `db:"files" json:"files,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"date"`
}

// MessagePage is one page of a conversation's history, newest-first.
type MessagePage struct {
	Messages       []Message `json:"messages"`
	ConversationID string    `json:"conversation_id"`
	Total          int       `json:"total"`
	NextSkip       *int      `json:"next_skip"`
}

// Post and Campaign are the content entities users can be connected to.
// Their full CRUD lives outside this service; only existence matters here.
type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Campaign struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
