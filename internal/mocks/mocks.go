package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID string) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserCard(ctx context.Context, userID string) (models.UserCard, error) {
	args := m.Called(ctx, userID)
	var card models.UserCard
	if val := args.Get(0); val != nil {
		card = val.(models.UserCard)
	}
	return card, args.Error(1)
}

func (m *UserRepositoryMock) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserCard, error) {
	args := m.Called(ctx, query, limit)
	var cards []models.UserCard
	if val := args.Get(0); val != nil {
		cards = val.([]models.UserCard)
	}
	return cards, args.Error(1)
}

func (m *UserRepositoryMock) ListLinks(ctx context.Context, userID string) ([]models.Link, error) {
	args := m.Called(ctx, userID)
	var links []models.Link
	if val := args.Get(0); val != nil {
		links = val.([]models.Link)
	}
	return links, args.Error(1)
}

func (m *UserRepositoryMock) ListOutgoingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []models.LinkRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.LinkRequest)
	}
	return reqs, args.Error(1)
}

func (m *UserRepositoryMock) ListIncomingRequests(ctx context.Context, userID string) ([]models.LinkRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []models.LinkRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.LinkRequest)
	}
	return reqs, args.Error(1)
}

func (m *UserRepositoryMock) GetRelation(ctx context.Context, userID, otherID string) (models.Relation, error) {
	args := m.Called(ctx, userID, otherID)
	var rel models.Relation
	if val := args.Get(0); val != nil {
		rel = val.(models.Relation)
	}
	return rel, args.Error(1)
}

func (m *UserRepositoryMock) CreateLinkRequest(ctx context.Context, req models.LinkRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetPendingRequest(ctx context.Context, senderID, receiverID string) (models.LinkRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	var req models.LinkRequest
	if val := args.Get(0); val != nil {
		req = val.(models.LinkRequest)
	}
	return req, args.Error(1)
}

func (m *UserRepositoryMock) PromoteToLink(ctx context.Context, req models.LinkRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *UserRepositoryMock) RemoveRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) Append(ctx context.Context, n models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListForUser(ctx context.Context, userID string, skip, limit int) ([]models.NotificationView, int, error) {
	args := m.Called(ctx, userID, skip, limit)
	var views []models.NotificationView
	if val := args.Get(0); val != nil {
		views = val.([]models.NotificationView)
	}
	return views, args.Int(1), args.Error(2)
}

func (m *NotificationRepositoryMock) CountUnseen(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkSeen(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	args := m.Called(ctx, horizon)
	return args.Get(0).(int64), args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) GetConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) GetOrCreateDirect(ctx context.Context, userID, otherID string) (models.Conversation, error) {
	args := m.Called(ctx, userID, otherID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) CreateGroup(ctx context.Context, id, name, adminID string, memberIDs []string) (models.Conversation, error) {
	args := m.Called(ctx, id, name, adminID, memberIDs)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) ListGroupsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	var convs []models.Conversation
	if val := args.Get(0); val != nil {
		convs = val.([]models.Conversation)
	}
	return convs, args.Error(1)
}

func (m *ConversationRepositoryMock) ListMembers(ctx context.Context, conversationID string) ([]string, error) {
	args := m.Called(ctx, conversationID)
	var members []string
	if val := args.Get(0); val != nil {
		members = val.([]string)
	}
	return members, args.Error(1)
}

func (m *ConversationRepositoryMock) IsMember(ctx context.Context, conversationID, userID string) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ConversationRepositoryMock) TouchLastMessaged(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, conversationID, senderID, text string, files []string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, text, files)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context, conversationID string, skip, limit int) ([]models.Message, int, error) {
	args := m.Called(ctx, conversationID, skip, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Int(1), args.Error(2)
}

func (m *MessageRepositoryMock) DeleteOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	args := m.Called(ctx, horizon)
	return args.Get(0).(int64), args.Error(1)
}

type ContentRepositoryMock struct {
	mock.Mock
}

func (m *ContentRepositoryMock) PostExists(ctx context.Context, postID string) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *ContentRepositoryMock) CampaignExists(ctx context.Context, campaignID string) (bool, error) {
	args := m.Called(ctx, campaignID)
	return args.Bool(0), args.Error(1)
}

func (m *ContentRepositoryMock) CreatePost(ctx context.Context, post models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *ContentRepositoryMock) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

var (
	_ repositories.UserRepository         = (*UserRepositoryMock)(nil)
	_ repositories.NotificationRepository = (*NotificationRepositoryMock)(nil)
	_ repositories.ConversationRepository = (*ConversationRepositoryMock)(nil)
	_ repositories.MessageRepository      = (*MessageRepositoryMock)(nil)
	_ repositories.ContentRepository      = (*ContentRepositoryMock)(nil)
)
