package ws

import (
	"context"
	"encoding/json"
	"errors"

	"social-service/internal/models"
)

const maxMessageFiles = 10

// joinToRooms subscribes the connection to every group conversation the user
// belongs to. Membership is recomputed from storage on each call rather than
// cached, so a fresh call picks up groups created since connect.
func (h *SocketHandler) joinToRooms(ctx context.Context, client *Client) error {
	groups, err := h.conversations.ListGroupsForUser(ctx, client.UserID)
	if err != nil {
		return err
	}
	for _, conv := range groups {
		h.hub.JoinRoom(conv.ID, client)
	}
	return nil
}

// getDmMessages pages through a direct conversation, creating it on first
// contact between the two users.
func (h *SocketHandler) getDmMessages(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req getDmMessagesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}

	var conversationID string
	if req.ConversationID != "" {
		if !models.ValidID(req.ConversationID) {
			return nil, errors.New("invalid conversation_id")
		}
		member, err := h.conversations.IsMember(ctx, req.ConversationID, client.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, errors.New("not a conversation member")
		}
		conversationID = req.ConversationID
	} else {
		if req.ReceiverID == "" {
			return nil, errors.New("receiver_id is required")
		}
		if !models.ValidID(req.ReceiverID) {
			return nil, errors.New("invalid receiver_id")
		}
		if req.ReceiverID == client.UserID {
			return nil, errors.New("receiver_id cannot be yourself")
		}
		conv, err := h.conversations.GetOrCreateDirect(ctx, client.UserID, req.ReceiverID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	}

	return h.pageMessages(ctx, conversationID, req.Skip, req.Limit)
}

// sendDmText stores a direct message and pushes it to the receiver's live
// connections.
func (h *SocketHandler) sendDmText(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req sendDmTextRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.Text == "" {
		return nil, errors.New("empty message cannot be sent")
	}
	msg, err := h.postDirect(ctx, client, req.ConversationID, req.ReceiverID, req.Text, nil)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// sendDmFiles is sendDmText for file attachments.
func (h *SocketHandler) sendDmFiles(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req sendDmFilesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if len(req.Files) == 0 {
		return nil, errors.New("empty message cannot be sent")
	}
	if len(req.Files) > maxMessageFiles {
		return nil, errors.New("too many files")
	}
	msg, err := h.postDirect(ctx, client, req.ConversationID, req.ReceiverID, "", req.Files)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (h *SocketHandler) postDirect(ctx context.Context, client *Client, conversationID, receiverID, text string, files []string) (models.Message, error) {
	if receiverID == "" {
		return models.Message{}, errors.New("receiver_id is required")
	}
	if !models.ValidID(receiverID) {
		return models.Message{}, errors.New("invalid receiver_id")
	}
	if conversationID == "" {
		return models.Message{}, errors.New("conversation_id is required")
	}
	if !models.ValidID(conversationID) {
		return models.Message{}, errors.New("invalid conversation_id")
	}

	member, err := h.conversations.IsMember(ctx, conversationID, client.UserID)
	if err != nil {
		return models.Message{}, err
	}
	if !member {
		return models.Message{}, errors.New("not a conversation member")
	}

	msg, err := h.messages.CreateMessage(ctx, conversationID, client.UserID, text, files)
	if err != nil {
		return models.Message{}, err
	}
	if err := h.conversations.TouchLastMessaged(ctx, conversationID); err != nil {
		return models.Message{}, err
	}

	h.hub.DeliverToUser(receiverID, PushDirectMessage, msg)
	return msg, nil
}

// createGroupConversation creates a named group with at least two members
// besides the creator, joins the creator's connection to the room, and
// returns the member-resolved view.
func (h *SocketHandler) createGroupConversation(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req createGroupRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.GroupName == "" {
		return nil, errors.New("group name is required")
	}
	if len(req.Members) < 2 {
		return nil, errors.New("a group conversation requires at least two members besides yourself")
	}
	for _, id := range req.Members {
		if !models.ValidID(id) {
			return nil, errors.New("invalid member id " + id)
		}
	}

	conv, err := h.conversations.CreateGroup(ctx, models.NewID(), req.GroupName, client.UserID, req.Members)
	if err != nil {
		return nil, err
	}
	h.hub.JoinRoom(conv.ID, client)

	view, err := h.buildConversationView(ctx, conv)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (h *SocketHandler) loadGroupConversations(ctx context.Context, client *Client) (any, error) {
	groups, err := h.conversations.ListGroupsForUser(ctx, client.UserID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ConversationView, 0, len(groups))
	for _, conv := range groups {
		view, err := h.buildConversationView(ctx, conv)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *SocketHandler) getGmMessages(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req getGmMessagesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.ConversationID == "" {
		return nil, errors.New("conversation_id is required")
	}
	if !models.ValidID(req.ConversationID) {
		return nil, errors.New("invalid conversation_id")
	}

	member, err := h.conversations.IsMember(ctx, req.ConversationID, client.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.New("not a conversation member")
	}
	return h.pageMessages(ctx, req.ConversationID, req.Skip, req.Limit)
}

// sendGmText stores a group message and broadcasts it to the room, excluding
// the sending connection, which gets the message in its ack.
func (h *SocketHandler) sendGmText(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req sendGmTextRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if req.Text == "" {
		return nil, errors.New("empty message cannot be sent")
	}
	return h.postGroup(ctx, client, req.ConversationID, req.Text, nil)
}

func (h *SocketHandler) sendGmFiles(ctx context.Context, client *Client, raw json.RawMessage) (any, error) {
	var req sendGmFilesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if len(req.Files) == 0 {
		return nil, errors.New("empty message cannot be sent")
	}
	if len(req.Files) > maxMessageFiles {
		return nil, errors.New("too many files")
	}
	return h.postGroup(ctx, client, req.ConversationID, "", req.Files)
}

func (h *SocketHandler) postGroup(ctx context.Context, client *Client, conversationID, text string, files []string) (any, error) {
	if conversationID == "" {
		return nil, errors.New("conversation_id is required")
	}
	if !models.ValidID(conversationID) {
		return nil, errors.New("invalid conversation_id")
	}

	member, err := h.conversations.IsMember(ctx, conversationID, client.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.New("not a conversation member")
	}

	msg, err := h.messages.CreateMessage(ctx, conversationID, client.UserID, text, files)
	if err != nil {
		return nil, err
	}
	if err := h.conversations.TouchLastMessaged(ctx, conversationID); err != nil {
		return nil, err
	}

	h.hub.BroadcastToRoom(conversationID, PushGroupMessage, msg, client)
	return msg, nil
}

func (h *SocketHandler) pageMessages(ctx context.Context, conversationID string, skip, limit int) (models.MessagePage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	msgs, total, err := h.messages.ListMessages(ctx, conversationID, skip, limit)
	if err != nil {
		return models.MessagePage{}, err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return models.MessagePage{
		Messages:       msgs,
		ConversationID: conversationID,
		Total:          total,
		NextSkip:       models.NextSkip(skip, limit, total),
	}, nil
}

// buildConversationView resolves member ids to user cards. Members whose
// accounts have disappeared are skipped rather than failing the view.
func (h *SocketHandler) buildConversationView(ctx context.Context, conv models.Conversation) (models.ConversationView, error) {
	memberIDs, err := h.conversations.ListMembers(ctx, conv.ID)
	if err != nil {
		return models.ConversationView{}, err
	}

	view := models.ConversationView{
		ID:      conv.ID,
		Type:    conv.Type,
		Members: make([]models.UserCard, 0, len(memberIDs)),
	}
	if conv.Room != nil {
		view.GroupName = *conv.Room
	}
	for _, id := range memberIDs {
		card, err := h.users.GetUserCard(ctx, id)
		if err != nil {
			continue
		}
		if conv.AdminID != nil && *conv.AdminID == card.ID {
			admin := card
			view.Admin = &admin
		}
		view.Members = append(view.Members, card)
	}
	return view, nil
}
