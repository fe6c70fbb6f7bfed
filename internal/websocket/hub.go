package websocket

import (
	"context"
	"encoding/json"

	"dms-backend/internal/entity"
	"dms-backend/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel peer instances use to
// relay notifications to users connected elsewhere.
const clusterChannel = "cluster_events"

// broadcastTarget addresses every connected user in a cluster envelope.
const broadcastTarget = "*"

// directMessage is a payload addressed to one user's connections.
type directMessage struct {
	userID uuid.UUID
	data   []byte
}

// Hub fans notifications out to websocket clients. The clients map and
// every Send channel close are owned by the Run goroutine alone; all
// delivery flows through its channels, so a stalled client can be
// evicted without racing a concurrent send.
type Hub struct {
	// UserID -> connections (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage

	// Redis connection for cross-instance fan-out. Nil means single
	// instance mode: local delivery only.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		direct:     make(chan directMessage),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.dropClient(client)

		case data := <-h.broadcast:
			for userID := range h.clients {
				h.deliver(h.clients[userID], data)
			}

		case msg := <-h.direct:
			h.deliver(h.clients[msg.userID], msg.data)
		}
	}
}

// Broadcast sends a notification to ALL connected clients, here and on
// peer instances.
func (h *Hub) Broadcast(notification entity.Notification) {
	data := encodeNotification(notification)
	h.broadcast <- data
	h.relayToCluster(broadcastTarget, data)
}

// Send delivers a notification to one user's connected devices.
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data := encodeNotification(notification)
	h.direct <- directMessage{userID: userID, data: data}

	// Always relay: the same user may be connected to another instance.
	h.relayToCluster(userID.String(), data)
}

// deliver pushes a payload to each client, evicting clients whose send
// buffer is full rather than blocking the hub. Run goroutine only.
func (h *Hub) deliver(clients []*Client, data []byte) {
	var stalled []*Client
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	for _, client := range stalled {
		h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"user_id": client.UserID})
		h.dropClient(client)
	}
}

// dropClient removes a client from the map and closes its Send channel.
// Run goroutine only; a client already removed is a no-op, so the
// channel can never be closed twice.
func (h *Hub) dropClient(client *Client) {
	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

func encodeNotification(notification entity.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

func (h *Hub) relayToCluster(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	envelope, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, envelope)
}

// subscribeToCluster feeds {target_user_id, message} envelopes published
// by peer instances into the local delivery channels.
func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Cluster envelope parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		if envelope.TargetUserID == broadcastTarget {
			h.broadcast <- envelope.Message
			continue
		}

		uid, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}
		h.direct <- directMessage{userID: uid, data: envelope.Message}
	}
}
