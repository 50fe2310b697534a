package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"saturnalia/pkg/logger"
)

// Client represents one connected live-feed consumer.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks all active live-feed connections and fans broadcast
// messages out to them.
type Manager struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				m.mutex.Unlock()
				logger.Debug("Feed client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client]; ok {
					delete(m.clients, client)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Feed client unregistered: %s", client.UserID)

			case message := <-m.broadcast:
				m.mutex.Lock()
				for client := range m.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(m.clients, client)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Broadcast sends a message to every connected client.
func (m *Manager) Broadcast(message []byte) {
	m.broadcast <- message
}

// ReadPump drains the connection until it closes, then unregisters the
// client. Incoming frames are ignored; the feed is one-way.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Feed connection error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Feed write error for %s: %v", c.UserID, err)
			return
		}
	}
}
