// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// WebSocketClient represents a connected WebSocket client
type WebSocketClient struct {
	conn              *websocket.Conn
	send              chan []byte
	natsConn          *nats.Conn
	natsSubscriptions []*nats.Subscription
	logger            logrus.FieldLogger
	closeOnce         sync.Once
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

// WebSocketUpgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// ResearchWebSocketHandler streams niche-identified events to connected
// clients as they are published on the research subject
func ResearchWebSocketHandler(natsConn *nats.Conn, eventsSubject string, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Error("failed to upgrade to WebSocket")
			return
		}

		client := &WebSocketClient{
			conn:     conn,
			send:     make(chan []byte, 256),
			natsConn: natsConn,
			logger:   logger,
		}

		go client.writePump()
		go client.readPump()

		if err := client.subscribeToResearchEvents(eventsSubject); err != nil {
			logger.WithError(err).Error("failed to subscribe to research events")
			client.closeConnection()
			return
		}

		welcomeMsg := map[string]interface{}{
			"type":    "welcome",
			"subject": eventsSubject,
			"time":    time.Now(),
		}

		welcomeJSON, _ := json.Marshal(welcomeMsg)
		client.send <- welcomeJSON

		logger.Info("new research WebSocket connection")
	}
}

// readPump drains the connection so close frames and pongs are processed
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Warn("WebSocket read error")
			}
			break
		}
		// Incoming messages are ignored; the research stream is one-way.
	}
}

// writePump pumps queued events to the WebSocket connection
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribeToResearchEvents forwards published research events to the client
func (c *WebSocketClient) subscribeToResearchEvents(subject string) error {
	sub, err := c.natsConn.Subscribe(subject, func(msg *nats.Msg) {
		c.send <- msg.Data
	})
	if err != nil {
		return err
	}
	c.natsSubscriptions = append(c.natsSubscriptions, sub)

	return nil
}

// closeConnection closes the WebSocket connection and cleans up resources.
// Both pumps call it; only the first call tears anything down.
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		for _, sub := range c.natsSubscriptions {
			sub.Unsubscribe()
		}

		c.conn.Close()
		close(c.send)

		c.logger.Info("research WebSocket connection closed")
	})
}
