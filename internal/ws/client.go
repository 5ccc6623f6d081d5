package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// wsConn is the slice of *websocket.Conn the hub needs. Narrowing it keeps
// the broadcast paths testable without a live upgrade.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const textMessage = 1

// Client is one live websocket connection for an authenticated user. Writes
// are serialized through a mutex because both the read-loop acks and the hub
// pushes target the same connection.
type Client struct {
	ConnID      string
	UserID      string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time

	conn wsConn
	mu   sync.Mutex
}

// NewClient wraps an upgraded connection.
func NewClient(userID string, conn wsConn) *Client {
	return &Client{
		ConnID:      newConnID(),
		UserID:      userID,
		ConnectedAt: time.Now(),
		conn:        conn,
	}
}

// Send writes a JSON frame to the connection.
func (c *Client) Send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(textMessage, payload)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
