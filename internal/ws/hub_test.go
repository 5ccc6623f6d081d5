package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverToUserReachesEveryConnection(t *testing.T) {
	presence := NewPresence()
	hub := NewHub(presence)

	tab := &fakeConn{}
	phone := &fakeConn{}
	presence.Register(NewClient(testUserID, tab))
	presence.Register(NewClient(testUserID, phone))

	delivered := hub.DeliverToUser(testUserID, PushNotification, map[string]string{"message": "hello"})

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, tab.writeCount())
	assert.Equal(t, 1, phone.writeCount())

	var push Push
	require.NoError(t, json.Unmarshal(tab.lastWrite(), &push))
	assert.Equal(t, PushNotification, push.Event)
}

func TestDeliverToOfflineUserIsSilent(t *testing.T) {
	hub := NewHub(NewPresence())

	delivered := hub.DeliverToUser(testUserID, PushNotification, nil)
	assert.Equal(t, 0, delivered)
}

func TestBroadcastToRoomSkipsSender(t *testing.T) {
	presence := NewPresence()
	hub := NewHub(presence)

	senderConn := &fakeConn{}
	memberConn := &fakeConn{}
	sender := NewClient(testUserID, senderConn)
	member := NewClient("bbbbbbbbbbbbbbbbbbbbbbbb", memberConn)

	room := "cccccccccccccccccccccccc"
	hub.JoinRoom(room, sender)
	hub.JoinRoom(room, member)

	hub.BroadcastToRoom(room, PushGroupMessage, map[string]string{"text": "hi"}, sender)

	assert.Equal(t, 0, senderConn.writeCount())
	assert.Equal(t, 1, memberConn.writeCount())
}

func TestLeaveRoomsRemovesFromEveryRoom(t *testing.T) {
	presence := NewPresence()
	hub := NewHub(presence)

	conn := &fakeConn{}
	client := NewClient(testUserID, conn)
	hub.JoinRoom("cccccccccccccccccccccccc", client)
	hub.JoinRoom("dddddddddddddddddddddddd", client)

	hub.LeaveRooms(client)

	hub.BroadcastToRoom("cccccccccccccccccccccccc", PushGroupMessage, nil, nil)
	hub.BroadcastToRoom("dddddddddddddddddddddddd", PushGroupMessage, nil, nil)
	assert.Equal(t, 0, conn.writeCount())
}

func TestWriteFailureDropsConnection(t *testing.T) {
	presence := NewPresence()
	hub := NewHub(presence)

	broken := &fakeConn{failWrites: true}
	healthy := &fakeConn{}
	brokenClient := NewClient(testUserID, broken)
	presence.Register(brokenClient)
	presence.Register(NewClient(testUserID, healthy))
	hub.JoinRoom("cccccccccccccccccccccccc", brokenClient)

	hub.DeliverToUser(testUserID, PushNotification, nil)

	assert.True(t, broken.isClosed())
	assert.Equal(t, 1, healthy.writeCount())
	// The failed connection is evicted everywhere; the healthy one survives.
	require.Len(t, presence.Lookup(testUserID), 1)

	hub.BroadcastToRoom("cccccccccccccccccccccccc", PushGroupMessage, nil, nil)
	assert.Equal(t, 0, broken.writeCount())
}
