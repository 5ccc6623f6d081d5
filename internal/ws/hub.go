package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"social-service/internal/observability"
)

// Push is the envelope for every server-to-client frame.
type Push struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is the realtime delivery gateway: best-effort push to a single user
// through the presence directory, and room broadcast for group
// conversations. A miss is silent; the notification log already holds the
// durable record, only immediacy is lost.
type Hub struct {
	presence *Presence

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

// NewHub creates a hub around the given presence directory.
func NewHub(presence *Presence) *Hub {
	return &Hub{
		presence: presence,
		rooms:    make(map[string]map[*Client]bool),
	}
}

// DeliverToUser pushes the event to every live connection of the target
// user and reports how many connections were written to. No retry, no
// acknowledgment; write failures drop the connection.
func (h *Hub) DeliverToUser(userID, event string, data any) int {
	clients := h.presence.Lookup(userID)
	for _, client := range clients {
		h.send(client, event, data)
	}
	return len(clients)
}

// JoinRoom adds a connection to a conversation room.
func (h *Hub) JoinRoom(conversationID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[conversationID]; !ok {
		h.rooms[conversationID] = make(map[*Client]bool)
	}
	h.rooms[conversationID][client] = true
}

// LeaveRooms removes the connection from every room, called on disconnect.
func (h *Hub) LeaveRooms(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.rooms {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, id)
		}
	}
}

// BroadcastToRoom pushes the event to every connection in the room, except
// the optional sender connection.
func (h *Hub) BroadcastToRoom(conversationID, event string, data any, except *Client) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[conversationID]))
	for c := range h.rooms[conversationID] {
		if c != except {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.send(client, event, data)
	}
}

func (h *Hub) send(client *Client, event string, data any) {
	if err := client.Send(Push{Event: event, Data: data}); err != nil {
		log.Printf("websocket write error: %v", err)
		client.Close()
		h.presence.Unregister(client)
		h.LeaveRooms(client)
		h.publishWSError(client, err)
	}
}

func (h *Hub) publishWSError(client *Client, err error) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       "ws_error",
			"conn_id":     client.ConnID,
			"duration_ms": time.Since(client.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
		"identity": map[string]interface{}{
			"user_id":   client.UserID,
			"device_id": client.DeviceID,
			"ip":        client.IP,
		},
	}

	headers := observability.BuildHeaders(client.RequestID, client.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.home", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
	observability.IncWSEvent("ws_error")
}
