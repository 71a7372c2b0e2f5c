package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/resto-crm/api/internal/enum"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastEvent(enum.EventTableCreated, map[string]int{"number": 5})
	time.Sleep(10 * time.Millisecond)

	for i, client := range []*Client{client1, client2} {
		select {
		case raw := <-client.send:
			var event Event
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("client %d: unmarshal event: %v", i+1, err)
			}
			if event.Type != enum.EventTableCreated {
				t.Errorf("client %d: event type: got %s, want %s", i+1, event.Type, enum.EventTableCreated)
			}
		default:
			t.Fatalf("client %d: no event received", i+1)
		}
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client with no send buffer cannot keep up.
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastEvent(enum.EventTableDeleted, map[string]string{"id": "x"})
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[slow] {
		t.Fatal("slow client not dropped")
	}
}
