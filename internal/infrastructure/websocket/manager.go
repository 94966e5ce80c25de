package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gamecatalog/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// Client represents a WebSocket connection client
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Manager fans state events out to every connected viewer.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex

	// snapshot produces the full state sent on connect and on request
	snapshot func() interface{}
}

func NewManager(snapshot func() interface{}) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		snapshot:   snapshot,
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.ID)
				m.sendSnapshot(client)

			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("WebSocket client unregistered: %s", client.ID)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []*Client
				for _, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						slow = append(slow, client)
					}
				}
				m.mutex.RUnlock()
				for _, client := range slow {
					logger.Warn("Dropping slow WebSocket client %s", client.ID)
					m.remove(client)
				}

			case <-ctx.Done():
				m.mutex.Lock()
				for id, client := range m.clients {
					close(client.Send)
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Publish queues msg for every client. It never blocks the caller; when the
// queue is full the event is dropped and clients catch up on the next one.
func (m *Manager) Publish(msg WSMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().Format(time.RFC3339)
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("WebSocket: failed to encode %s event: %v", msg.Type, err)
		return
	}
	select {
	case m.broadcast <- payload:
	default:
		logger.Warn("WebSocket: broadcast queue full, dropping %s event", msg.Type)
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if existing, ok := m.clients[client.ID]; ok && existing == client {
		delete(m.clients, client.ID)
		close(client.Send)
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error from %s: %v", c.ID, err)
			}
			break
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket write error to %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
