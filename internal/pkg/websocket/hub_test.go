package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
)

func newHubWithClient(threadID string, buffer int) (*Hub, *Client) {
	h := NewHub(zerolog.Nop())
	c := &Client{
		hub:      h,
		send:     make(chan []byte, buffer),
		userID:   "user-1",
		threadID: threadID,
	}
	h.clients[threadID] = map[*Client]bool{c: true}
	return h, c
}

func TestBroadcastReachesThreadSubscribers(t *testing.T) {
	h, c := newHubWithClient("thread-1", 1)

	h.broadcastMessage(&Message{
		Type:     "text",
		ThreadID: "thread-1",
		SenderID: "user-2",
		Text:     "hello",
		ID:       "m1",
	})

	select {
	case data := <-c.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if got.Text != "hello" || got.SenderID != "user-2" || got.ID != "m1" {
			t.Errorf("frame = %+v", got)
		}
	default:
		t.Fatal("no frame delivered to subscriber")
	}
}

func TestBroadcastScopedToThread(t *testing.T) {
	h, c := newHubWithClient("thread-1", 1)

	h.broadcastMessage(&Message{Type: "text", ThreadID: "thread-2", Text: "elsewhere"})

	select {
	case <-c.send:
		t.Error("client received a frame for another thread")
	default:
	}
}

func TestBroadcastMessageEnvelope(t *testing.T) {
	h, c := newHubWithClient("thread-1", 1)
	go h.Run()

	h.BroadcastMessage(&models.ChatMessage{
		ID:       "m1",
		ThreadID: "thread-1",
		SenderID: "user-2",
		Body:     "hi",
		Ts:       1700000000000,
	})

	var got Message
	if err := json.Unmarshal(<-c.send, &got); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if got.Type != "text" {
		t.Errorf("type = %q, want text", got.Type)
	}
	if got.ThreadID != "thread-1" || got.Text != "hi" || got.Timestamp != 1700000000000 {
		t.Errorf("frame = %+v", got)
	}
}

func TestBroadcastDropsSlowClientWithoutBlocking(t *testing.T) {
	h := NewHub(zerolog.Nop())
	slow := &Client{
		hub:      h,
		send:     make(chan []byte), // never drained
		userID:   "user-1",
		threadID: "thread-1",
	}
	h.clients["thread-1"] = map[*Client]bool{slow: true}
	go h.Run()

	done := make(chan struct{})
	go func() {
		h.BroadcastMessage(&models.ChatMessage{ThreadID: "thread-1", Body: "first"})
		h.BroadcastMessage(&models.ChatMessage{ThreadID: "thread-1", Body: "second"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}

	deadline := time.Now().Add(time.Second)
	for h.GetClientsCount("thread-1") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow subscriber was not unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestGetClientsCount(t *testing.T) {
	h, _ := newHubWithClient("thread-1", 1)

	if n := h.GetClientsCount("thread-1"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if n := h.GetClientsCount("thread-2"); n != 0 {
		t.Errorf("count for empty thread = %d, want 0", n)
	}
}
