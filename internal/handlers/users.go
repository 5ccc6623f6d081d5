package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"social-service/internal/repositories"
)

const searchLimit = 20

// UsersHandler serves user lookup endpoints.
type UsersHandler struct {
	users repositories.UserRepository
}

// NewUsersHandler builds a UsersHandler.
func NewUsersHandler(users repositories.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// Search finds users by name prefix.
func (h *UsersHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := searchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= searchLimit {
			limit = parsed
		}
	}

	cards, err := h.users.SearchUsers(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": cards})
}
