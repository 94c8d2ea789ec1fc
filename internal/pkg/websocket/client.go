package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB

	// Time allowed for persisting an inbound message
	recordTimeout = 10 * time.Second
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development, in production you should restrict this
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundMessage is what a connected client may send: just text. Sender and
// thread come from the authenticated connection, never from the payload.
type inboundMessage struct {
	Text string `json:"text"`
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub *Hub

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	// User ID of the client
	userID string

	// Thread this client is subscribed to
	threadID string

	// Persists inbound messages; the resulting broadcast flows back through
	// the hub
	sink MessageSink

	// Logger instance
	logger zerolog.Logger
}

// readPump pumps messages from the websocket connection into the message sink
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().
					Str("userID", c.userID).
					Str("threadID", c.threadID).
					Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().
					Err(err).
					Str("userID", c.userID).
					Str("threadID", c.threadID).
					Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().
					Err(err).
					Str("userID", c.userID).
					Str("threadID", c.threadID).
					Msg("WebSocket read error")
			}
			break
		}

		raw = bytes.TrimSpace(bytes.Replace(raw, newline, space, -1))

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Error().
				Err(err).
				Str("userID", c.userID).
				Str("threadID", c.threadID).
				Msg("Failed to unmarshal client message")
			continue
		}
		if msg.Text == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		_, err = c.sink.RecordMessage(ctx, c.threadID, c.userID, msg.Text)
		cancel()
		if err != nil {
			c.logger.Error().
				Err(err).
				Str("userID", c.userID).
				Str("threadID", c.threadID).
				Msg("Failed to record inbound message")
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
