package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
)

// Hub maintains the set of active clients and broadcasts messages to the
// clients subscribed to each thread.
type Hub struct {
	// Registered clients organized by thread ID
	clients map[string]map[*Client]bool

	// Channel for inbound messages from clients
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message is the envelope sent over the WebSocket
type Message struct {
	Type      string `json:"type"`
	ThreadID  string `json:"threadId"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	ID        string `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	threadID := client.threadID
	if _, ok := h.clients[threadID]; !ok {
		h.clients[threadID] = make(map[*Client]bool)
	}
	h.clients[threadID][client] = true

	h.logger.Info().
		Str("threadID", threadID).
		Str("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	threadID := client.threadID
	if _, ok := h.clients[threadID]; ok {
		if _, ok := h.clients[threadID][client]; ok {
			delete(h.clients[threadID], client)
			close(client.send)

			// If no more clients on this thread, clean up
			if len(h.clients[threadID]) == 0 {
				delete(h.clients, threadID)
			}

			h.logger.Info().
				Str("threadID", threadID).
				Str("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()

	clients, ok := h.clients[message.ThreadID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("threadID", message.ThreadID).
			Msg("No clients on thread for broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("threadID", message.ThreadID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	// Clients whose send buffer is full are slow or disconnected. They
	// cannot be unregistered here through the unregister channel: this
	// runs on the hub goroutine, and a self-send would deadlock it.
	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	count := len(clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("threadID", message.ThreadID).
		Int("clientCount", count).
		Msg("Message broadcasted to thread")
}

// BroadcastMessage delivers a stored chat message to the thread's live
// subscribers.
func (h *Hub) BroadcastMessage(m *models.ChatMessage) {
	h.broadcast <- &Message{
		Type:      "text",
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Text:      m.Body,
		Timestamp: m.Ts,
		ID:        m.ID,
	}
}

// GetClientsCount returns the number of connected clients for a thread
func (h *Hub) GetClientsCount(threadID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[threadID]; ok {
		return len(clients)
	}
	return 0
}
