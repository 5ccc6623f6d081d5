package ws

import "encoding/json"

// Frame is a client-to-server request: a tagged event name, an opaque data
// record decoded per event, and a client-chosen id echoed back in the ack.
type Frame struct {
	ID    int64           `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Ack answers a frame. Exactly one of Data and Error is set.
type Ack struct {
	ID    int64     `json:"id"`
	Event string    `json:"event"`
	OK    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Error *ErrorMsg `json:"error,omitempty"`
}

// ErrorMsg is the error shape socket clients consume.
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// Socket event names, client to server.
const (
	EventJoinToRooms           = "joinToRooms"
	EventAddFriend             = "addFriend"
	EventAcceptFriend          = "acceptFriend"
	EventRejectFriend          = "rejectFriend"
	EventLoadNotifications     = "loadNotifications"
	EventSeenNotification      = "seenNotification"
	EventConnectToCampaign     = "connectToCampaign"
	EventConnectToPost         = "connectToPost"
	EventGetDmMessages         = "getDmMessages"
	EventSendDmText            = "sendDmText"
	EventSendDmFiles           = "sendDmFiles"
	EventCreateGroup           = "createGroupConversation"
	EventLoadGroups            = "loadGroupConversations"
	EventGetGmMessages         = "getGmMessages"
	EventSendGmText            = "sendGmText"
	EventSendGmFiles           = "sendGmFiles"
)

// Server-to-client push event names.
const (
	PushNotification  = "notification"
	PushDirectMessage = "directMessage"
	PushGroupMessage  = "groupMessage"
)

type addFriendRequest struct {
	ReceiverID string `json:"receiver_id"`
}

type acceptFriendRequest struct {
	SenderID string `json:"sender_id"`
}

type rejectFriendRequest struct {
	SenderID string `json:"sender_id"`
}

type loadNotificationsRequest struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type seenNotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

type connectToCampaignRequest struct {
	Receivers  []string `json:"receivers"`
	CampaignID string   `json:"campaign_id"`
}

type connectToPostRequest struct {
	Receivers []string `json:"receivers"`
	PostID    string   `json:"post_id"`
}

type getDmMessagesRequest struct {
	ReceiverID     string `json:"receiver_id"`
	ConversationID string `json:"conversation_id"`
	Skip           int    `json:"skip"`
	Limit          int    `json:"limit"`
}

type sendDmTextRequest struct {
	ReceiverID     string `json:"receiver_id"`
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

type sendDmFilesRequest struct {
	ReceiverID     string   `json:"receiver_id"`
	ConversationID string   `json:"conversation_id"`
	Files          []string `json:"files"`
}

type createGroupRequest struct {
	GroupName string   `json:"group_name"`
	Members   []string `json:"members"`
}

type getGmMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	Skip           int    `json:"skip"`
	Limit          int    `json:"limit"`
}

type sendGmTextRequest struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

type sendGmFilesRequest struct {
	ConversationID string   `json:"conversation_id"`
	Files          []string `json:"files"`
}
