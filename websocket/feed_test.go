package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civiclens/internal/feed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func roomExists(billID string) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	_, exists := hub.rooms[billID]
	return exists
}

func TestLeaveRoomDropsEmptyRoom(t *testing.T) {
	billID := "bill-room-lifecycle"
	conn := &websocket.Conn{}
	hub.joinRoom(billID, &Client{Conn: conn, SessionID: "s1", UserID: "u1"})

	if !roomExists(billID) {
		t.Fatal("Expected room after join")
	}
	if remaining := hub.leaveRoom(billID, conn); remaining != 0 {
		t.Errorf("Expected 0 remaining clients, got %d", remaining)
	}
	if roomExists(billID) {
		t.Error("Empty room was not removed from the hub")
	}
}

func TestLeaveRoomKeepsOccupiedRoom(t *testing.T) {
	billID := "bill-room-occupied"
	first := &Client{Conn: &websocket.Conn{}, SessionID: "s1", UserID: "u1"}
	second := &Client{Conn: &websocket.Conn{}, SessionID: "s2", UserID: "u2"}
	hub.joinRoom(billID, first)
	hub.joinRoom(billID, second)

	if remaining := hub.leaveRoom(billID, first.Conn); remaining != 1 {
		t.Errorf("Expected 1 remaining client, got %d", remaining)
	}
	if !roomExists(billID) {
		t.Error("Room with a remaining viewer was removed")
	}

	hub.leaveRoom(billID, second.Conn)
	if roomExists(billID) {
		t.Error("Room not removed after last viewer left")
	}
}

func TestLeaveRoomUnknownBill(t *testing.T) {
	if remaining := hub.leaveRoom("bill-never-joined", &websocket.Conn{}); remaining != 0 {
		t.Errorf("Expected 0 for unknown room, got %d", remaining)
	}
}

// newConnPair upgrades a loopback connection and returns both ends.
func newConnPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()

	serverCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		serverCh <- c
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	server = <-serverCh
	t.Cleanup(func() { server.Close() })
	return server, client
}

// A broadcast and a direct reply to the same connection must never write
// concurrently; gorilla/websocket panics on concurrent writers.
func TestRoomWritesAreSerialized(t *testing.T) {
	serverConn, clientConn := newConnPair(t)

	billID := "bill-serialized-writes"
	room := hub.joinRoom(billID, &Client{Conn: serverConn, SessionID: "s1", UserID: "u1"})
	defer hub.leaveRoom(billID, serverConn)

	const writesPerSide = 50

	received := make(chan error, 1)
	go func() {
		clientConn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for i := 0; i < 2*writesPerSide; i++ {
			if _, _, err := clientConn.ReadMessage(); err != nil {
				received <- err
				return
			}
		}
		received <- nil
	}()

	broadcastDone := make(chan struct{})
	go func() {
		defer close(broadcastDone)
		for i := 0; i < writesPerSide; i++ {
			event, err := feed.NewEvent(feed.EventTypePresence, feed.PresencePayload{Connected: 1})
			if err != nil {
				t.Errorf("NewEvent failed: %v", err)
				return
			}
			hub.BroadcastToBill(billID, event)
		}
	}()

	for i := 0; i < writesPerSide; i++ {
		if err := room.writeJSON(serverConn, gin.H{"type": "error", "error": "slow down"}); err != nil {
			t.Fatalf("Direct write %d failed: %v", i, err)
		}
	}
	<-broadcastDone

	if err := <-received; err != nil {
		t.Fatalf("Client reader failed: %v", err)
	}
}
