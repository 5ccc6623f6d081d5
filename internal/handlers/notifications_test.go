package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/links"
	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

func setupNotificationsRouter(notifications *mocks.NotificationRepositoryMock) *gin.Engine {
	manager := links.NewManager(new(mocks.UserRepositoryMock), notifications, new(mocks.ContentRepositoryMock))
	handler := NewNotificationsHandler(manager)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.GET("/notifications", handler.List)
	r.POST("/notifications/:notification_id/seen", handler.MarkSeen)
	return r
}

func TestListNotificationsPage(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	router := setupNotificationsRouter(notifications)

	views := []models.NotificationView{{ID: models.NewID(), Message: "hi"}}
	notifications.On("ListForUser", mock.Anything, userID, 10, 10).Return(views, 25, nil).Once()
	notifications.On("CountUnseen", mock.Anything, userID).Return(2, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications?skip=10&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var page models.NotificationPage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.NewNotifications)
	require.NotNil(t, page.NextSkip)
	assert.Equal(t, 20, *page.NextSkip)

	notifications.AssertExpectations(t)
}

func TestListNotificationsDefaultsWhenUnpaged(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	router := setupNotificationsRouter(notifications)

	notifications.On("ListForUser", mock.Anything, userID, 0, 10).Return([]models.NotificationView{}, 0, nil).Once()
	notifications.On("CountUnseen", mock.Anything, userID).Return(0, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var page models.NotificationPage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Nil(t, page.NextSkip)

	notifications.AssertExpectations(t)
}

func TestMarkSeenNoContent(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	router := setupNotificationsRouter(notifications)

	id := models.NewID()
	notifications.On("MarkSeen", mock.Anything, id).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/"+id+"/seen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	notifications.AssertExpectations(t)
}

func TestMarkSeenInvalidID(t *testing.T) {
	router := setupNotificationsRouter(new(mocks.NotificationRepositoryMock))

	req := httptest.NewRequest(http.MethodPost, "/notifications/short/seen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkSeenNotFound(t *testing.T) {
	notifications := new(mocks.NotificationRepositoryMock)
	router := setupNotificationsRouter(notifications)

	id := models.NewID()
	notifications.On("MarkSeen", mock.Anything, id).Return(repositories.ErrNotificationNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/"+id+"/seen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	notifications.AssertExpectations(t)
}
