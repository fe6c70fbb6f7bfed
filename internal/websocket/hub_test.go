package websocket

import (
	"testing"
	"time"

	"dms-backend/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func newTestClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
}

func TestHubSurvivesStalledClient(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userID := uuid.New()

	// Unbuffered Send with no reader: the first delivery stalls.
	stalled := newTestClient(hub, userID, 0)
	hub.register <- stalled

	hub.Send(userID, entity.Notification{Id: uuid.New(), Title: "first"})
	// A second delivery to the already-evicted client must not panic
	// the hub goroutine.
	hub.Send(userID, entity.Notification{Id: uuid.New(), Title: "second"})

	// The eviction owner closes the channel exactly once.
	select {
	case _, open := <-stalled.Send:
		assert.False(t, open, "stalled client's channel should be closed, not sent to")
	case <-time.After(time.Second):
		t.Fatal("stalled client was never evicted")
	}

	// The hub is still alive and delivering.
	healthy := newTestClient(hub, userID, 1)
	hub.register <- healthy
	hub.Send(userID, entity.Notification{Id: uuid.New(), Title: "after"})

	select {
	case payload := <-healthy.Send:
		assert.Contains(t, string(payload), "after")
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after evicting a stalled client")
	}
}

func TestHubBroadcastSkipsStalledClientOnly(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	stalled := newTestClient(hub, uuid.New(), 0)
	healthy := newTestClient(hub, uuid.New(), 1)
	hub.register <- stalled
	hub.register <- healthy

	hub.Broadcast(entity.Notification{Id: uuid.New(), Title: "everyone"})

	select {
	case payload := <-healthy.Send:
		assert.Contains(t, string(payload), "everyone")
	case <-time.After(time.Second):
		t.Fatal("healthy client did not receive the broadcast")
	}

	select {
	case _, open := <-stalled.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stalled client was never evicted")
	}
}

func TestHubMultiDeviceDelivery(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userID := uuid.New()
	tab1 := newTestClient(hub, userID, 1)
	tab2 := newTestClient(hub, userID, 1)
	hub.register <- tab1
	hub.register <- tab2

	hub.Send(userID, entity.Notification{Id: uuid.New(), Title: "both tabs"})

	for _, tab := range []*Client{tab1, tab2} {
		select {
		case payload := <-tab.Send:
			assert.Contains(t, string(payload), "both tabs")
		case <-time.After(time.Second):
			t.Fatal("device did not receive the notification")
		}
	}
}
