package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"social-service/internal/auth"
	"social-service/internal/links"
	"social-service/internal/observability"
	"social-service/internal/repositories"
)

// SocketHandler owns the single realtime endpoint: handshake, presence
// registration, and the per-connection read loop that dispatches events.
type SocketHandler struct {
	hub           *Hub
	presence      *Presence
	manager       *links.Manager
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	tokens        *auth.TokenManager
}

// NewSocketHandler constructs a SocketHandler.
func NewSocketHandler(hub *Hub, presence *Presence, manager *links.Manager,
	conversations repositories.ConversationRepository, messages repositories.MessageRepository,
	users repositories.UserRepository, tokens *auth.TokenManager) *SocketHandler {
	return &SocketHandler{
		hub:           hub,
		presence:      presence,
		manager:       manager,
		conversations: conversations,
		messages:      messages,
		users:         users,
		tokens:        tokens,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, authenticates it, and starts the read loop.
func (h *SocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("social-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := bearerToken(c)
	userID, err := h.tokens.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	span.SetAttributes(attribute.String("user.id", userID))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(userID, conn)
	client.DeviceID = observability.DeviceIDFromRequest(c.Request)
	client.IP = observability.IPFromRequest(c.Request)
	client.RequestID = observability.RequestIDFromRequest(c.Request)
	client.TraceID = span.SpanContext().TraceID().String()

	h.presence.Register(client)
	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishLifecycle(ctx, client, "ws_connect", "")

	go h.readLoop(client, conn)
}

func (h *SocketHandler) readLoop(client *Client, conn *websocket.Conn) {
	var closeReason string
	defer func() {
		h.presence.Unregister(client)
		h.hub.LeaveRooms(client)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publishLifecycle(context.Background(), client, "ws_disconnect", closeReason)
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(payload, &frame); err != nil {
			_ = client.Send(Ack{OK: false, Error: &ErrorMsg{Msg: "malformed frame"}})
			continue
		}
		h.dispatch(client, frame)
	}
}

func (h *SocketHandler) dispatch(client *Client, frame Frame) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	observability.IncWSEvent(frame.Event)

	var (
		data any
		err  error
	)
	switch frame.Event {
	case EventJoinToRooms:
		err = h.joinToRooms(ctx, client)
	case EventAddFriend:
		data, err = h.addFriend(ctx, client, frame.Data)
	case EventAcceptFriend:
		data, err = h.acceptFriend(ctx, client, frame.Data)
	case EventRejectFriend:
		err = h.rejectFriend(ctx, client, frame.Data)
	case EventLoadNotifications:
		data, err = h.loadNotifications(ctx, client, frame.Data)
	case EventSeenNotification:
		err = h.seenNotification(ctx, frame.Data)
	case EventConnectToCampaign:
		err = h.connectToCampaign(ctx, client, frame.Data)
	case EventConnectToPost:
		err = h.connectToPost(ctx, client, frame.Data)
	case EventGetDmMessages:
		data, err = h.getDmMessages(ctx, client, frame.Data)
	case EventSendDmText:
		data, err = h.sendDmText(ctx, client, frame.Data)
	case EventSendDmFiles:
		data, err = h.sendDmFiles(ctx, client, frame.Data)
	case EventCreateGroup:
		data, err = h.createGroupConversation(ctx, client, frame.Data)
	case EventLoadGroups:
		data, err = h.loadGroupConversations(ctx, client)
	case EventGetGmMessages:
		data, err = h.getGmMessages(ctx, client, frame.Data)
	case EventSendGmText:
		data, err = h.sendGmText(ctx, client, frame.Data)
	case EventSendGmFiles:
		data, err = h.sendGmFiles(ctx, client, frame.Data)
	default:
		err = errUnknownEvent
	}

	ack := Ack{ID: frame.ID, Event: frame.Event, OK: err == nil, Data: data}
	if err != nil {
		ack.Error = &ErrorMsg{Msg: err.Error()}
	}
	_ = client.Send(ack)
}

func (h *SocketHandler) publishLifecycle(ctx context.Context, client *Client, event, reason string) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       event,
			"conn_id":     client.ConnID,
			"duration_ms": time.Since(client.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"user_id":   client.UserID,
			"device_id": client.DeviceID,
			"ip":        client.IP,
		},
	}
	_ = observability.PublishEvent(ctx, "ws_events.home", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	}, observability.BuildHeaders(client.RequestID, client.TraceID))
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		const prefix = "Bearer "
		if len(header) > len(prefix) && header[:len(prefix)] == prefix {
			return header[len(prefix):]
		}
		return header
	}
	return c.Query("token")
}
