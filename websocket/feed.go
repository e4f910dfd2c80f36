package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"civiclens/internal/feed"
	"civiclens/services"
	"civiclens/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a connected feed viewer
type Client struct {
	Conn        *websocket.Conn
	SessionID   string
	UserID      string
	Email       string
	ConnectedAt time.Time
}

// Room holds the clients watching one bill's live feed
type Room struct {
	Clients map[*websocket.Conn]*Client
	Mutex   sync.Mutex
}

// Hub fans feed events out to the rooms. It satisfies feed.FeedHub.
type Hub struct {
	rooms map[string]*Room // billID hex -> room
	mu    sync.Mutex
}

var hub = &Hub{rooms: make(map[string]*Room)}

// GetHub returns the shared feed hub
func GetHub() *Hub {
	return hub
}

var streamConsumer *feed.StreamConsumer

// InitStreamConsumer wires the Redis Stream consumer to the hub
func InitStreamConsumer() {
	streamConsumer = feed.NewStreamConsumer(hub)
	if streamConsumer == nil {
		log.Println("Redis unavailable, live feed fan-out disabled")
	}
}

// BroadcastToBill sends an event to every client watching the bill
func (h *Hub) BroadcastToBill(billID string, event *feed.Event) {
	h.mu.Lock()
	room, exists := h.rooms[billID]
	h.mu.Unlock()
	if !exists {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal feed event: %v", err)
		return
	}

	room.Mutex.Lock()
	defer room.Mutex.Unlock()
	for conn := range room.Clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(room.Clients, conn)
		}
	}
}

// FeedHandler upgrades the connection and subscribes the client to a bill's
// live comment feed. A user opening a second subscription to the same bill
// replaces their first one.
func FeedHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims, err := utils.ParseJWTToken(token)
	if err != nil {
		log.Printf("Feed connection failed: invalid token - %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	billID := c.Query("bill")
	if billID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing bill parameter"})
		return
	}
	billObjectID, err := primitive.ObjectIDFromHex(billID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		Conn:        conn,
		SessionID:   uuid.NewString(),
		UserID:      claims.UserID,
		Email:       claims.Email,
		ConnectedAt: time.Now(),
	}

	room := hub.joinRoom(billID, client)
	if streamConsumer != nil {
		streamConsumer.StartConsumerGroup(billID)
	}
	broadcastPresence(billID, room)

	go readLoop(conn, client, billObjectID, billID, room)
}

// joinRoom registers the client, closing any prior connection the same user
// holds on this bill
func (h *Hub) joinRoom(billID string, client *Client) *Room {
	h.mu.Lock()
	room, exists := h.rooms[billID]
	if !exists {
		room = &Room{Clients: make(map[*websocket.Conn]*Client)}
		h.rooms[billID] = room
		log.Printf("Created feed room for bill %s", billID)
	}
	h.mu.Unlock()

	room.Mutex.Lock()
	defer room.Mutex.Unlock()
	for conn, existing := range room.Clients {
		if existing.UserID != "" && existing.UserID == client.UserID {
			conn.Close()
			delete(room.Clients, conn)
		}
	}
	room.Clients[client.Conn] = client
	return room
}

// leaveRoom removes the connection and returns the number of clients left.
// A room with no clients is dropped from the hub.
func (h *Hub) leaveRoom(billID string, conn *websocket.Conn) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, exists := h.rooms[billID]
	if !exists {
		return 0
	}

	room.Mutex.Lock()
	delete(room.Clients, conn)
	remaining := len(room.Clients)
	room.Mutex.Unlock()

	if remaining == 0 {
		delete(h.rooms, billID)
		log.Printf("Removed empty feed room for bill %s", billID)
	}
	return remaining
}

// writeJSON sends v to a single connection under the room's write lock.
// Broadcasts hold the same lock, so a connection never has two writers.
func (r *Room) writeJSON(conn *websocket.Conn, v interface{}) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	return conn.WriteJSON(v)
}

func readLoop(conn *websocket.Conn, client *Client, billObjectID primitive.ObjectID, billID string, room *Room) {
	defer func() {
		remaining := hub.leaveRoom(billID, conn)
		conn.Close()
		if remaining > 0 {
			broadcastPresence(billID, room)
		} else if streamConsumer != nil {
			streamConsumer.StopConsumerGroup(billID)
		}
	}()

	limiter := feed.NewRateLimiter()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg feed.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "comment":
			var payload struct {
				Content string `json:"content"`
			}
			if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Content == "" {
				continue
			}

			allowed, err := limiter.CheckCommentRateLimit(billID, client.UserID, feed.DefaultRateLimitConfig())
			if err != nil {
				log.Printf("Rate limit check failed: %v", err)
			}
			if err == nil && !allowed {
				room.writeJSON(conn, gin.H{"type": "error", "error": "Rate limit exceeded, slow down"})
				continue
			}

			name := utils.ExtractNameFromEmail(client.Email)
			if err := services.IngestStreamComment(billObjectID, name, payload.Content); err != nil {
				log.Printf("Failed to ingest live comment: %v", err)
			}
		}
	}
}

func broadcastPresence(billID string, room *Room) {
	room.Mutex.Lock()
	connected := int64(len(room.Clients))
	room.Mutex.Unlock()

	event, err := feed.NewEvent(feed.EventTypePresence, feed.PresencePayload{Connected: connected})
	if err != nil {
		return
	}
	hub.BroadcastToBill(billID, event)
}
