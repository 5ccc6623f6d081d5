package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/links"
	"social-service/internal/observability"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
	"social-service/internal/ws"
)

// LinksHandler exposes the friend-link lifecycle over HTTP, mirroring the
// realtime events for clients without a socket.
type LinksHandler struct {
	manager *links.Manager
	users   repositories.UserRepository
	hub     *ws.Hub
	emitter *telemetry.AuditEmitter
}

// NewLinksHandler builds a LinksHandler.
func NewLinksHandler(manager *links.Manager, users repositories.UserRepository, hub *ws.Hub, emitter *telemetry.AuditEmitter) *LinksHandler {
	return &LinksHandler{manager: manager, users: users, hub: hub, emitter: emitter}
}

// ListLinks returns the authenticated user's accepted friends.
func (h *LinksHandler) ListLinks(c *gin.Context) {
	userID := c.GetString("userID")

	list, err := h.users.ListLinks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load links"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": list})
}

// ListRequests returns the pending requests touching the authenticated user,
// split by direction.
func (h *LinksHandler) ListRequests(c *gin.Context) {
	userID := c.GetString("userID")

	incoming, err := h.users.ListIncomingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}
	outgoing, err := h.users.ListOutgoingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incoming": incoming, "outgoing": outgoing})
}

// SendRequest creates a pending link request and pushes the notification to
// the receiver when online.
func (h *LinksHandler) SendRequest(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	view, err := h.manager.SendRequest(c.Request.Context(), userID, req.ReceiverID)
	if err != nil {
		c.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.pushNotification(view.ReceiverID, view)
	h.emitter.Emit(c.Request.Context(), "INFO", "link request sent", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, view)
}

// AcceptRequest promotes the pending request from the given sender and pushes
// the acceptance notification back to them.
func (h *LinksHandler) AcceptRequest(c *gin.Context) {
	var req struct {
		SenderID string `json:"sender_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	view, err := h.manager.AcceptRequest(c.Request.Context(), userID, req.SenderID)
	if err != nil {
		c.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.pushNotification(view.ReceiverID, view)
	h.emitter.Emit(c.Request.Context(), "INFO", "link request accepted", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, view)
}

// RejectRequest drops the pending request from the given sender.
func (h *LinksHandler) RejectRequest(c *gin.Context) {
	var req struct {
		SenderID string `json:"sender_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	if err := h.manager.RejectRequest(c.Request.Context(), userID, req.SenderID); err != nil {
		c.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LinksHandler) pushNotification(receiverID string, view any) {
	if h.hub.DeliverToUser(receiverID, ws.PushNotification, view) > 0 {
		observability.IncNotificationDelivered("pushed")
	} else {
		observability.IncNotificationDelivered("stored")
	}
}

func linkErrorStatus(err error) int {
	switch {
	case errors.Is(err, links.ErrInvalidID), errors.Is(err, links.ErrSelfRequest):
		return http.StatusBadRequest
	case errors.Is(err, links.ErrAlreadyLinked), errors.Is(err, links.ErrRequestPending):
		return http.StatusConflict
	case errors.Is(err, links.ErrNoPendingRequest):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
