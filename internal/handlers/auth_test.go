package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"social-service/internal/auth"
	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

func setupAuthRouter(users *mocks.UserRepositoryMock) *gin.Engine {
	handler := NewAuthHandler(users, auth.NewTokenManager("test-secret", time.Hour))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	return r
}

func TestRegisterCreatesAccount(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return models.ValidID(user.ID) && user.Email == "ada@example.com" && user.PasswordHash != "hunter2secret"
	})).Return(nil).Once()

	body := bytes.NewBufferString(`{"full_name":"Ada","email":"Ada@Example.com","password":"hunter2secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])
	assert.NotContains(t, rec.Body.String(), "password_hash")

	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("CreateUser", mock.Anything, mock.AnythingOfType("models.User")).Return(repositories.ErrEmailTaken).Once()

	body := bytes.NewBufferString(`{"full_name":"Ada","email":"ada@example.com","password":"hunter2secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	users.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	router := setupAuthRouter(new(mocks.UserRepositoryMock))

	body := bytes.NewBufferString(`{"full_name":"Ada","email":"ada@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(models.User{
		ID:           userID,
		FullName:     "Ada",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}, nil).Once()

	body := bytes.NewBufferString(`{"email":"ada@example.com","password":"hunter2secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])

	users.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(models.User{
		ID:           userID,
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}, nil).Once()

	body := bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"email":"ghost@example.com","password":"hunter2secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}
