package websocket

import (
	"encoding/json"
	"time"

	"gamecatalog/pkg/logger"
)

const (
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeSnapshot = "snapshot"
	MessageTypeState    = "state"
	MessageTypeError    = "error"
)

// WSMessage is the envelope of every frame in both directions.
type WSMessage struct {
	Type      string      `json:"type"`
	Region    string      `json:"region,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// StateEvent announces that one region of the client state changed.
func StateEvent(region string, data interface{}) WSMessage {
	return WSMessage{
		Type:      MessageTypeState,
		Region:    region,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// HandleClientMessage processes incoming WebSocket messages
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Debug("WebSocket: failed to unmarshal message from client %s: %v", client.ID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{
			Type: MessageTypePong,
			Data: map[string]string{"status": "alive"},
		})

	case MessageTypeSnapshot:
		m.sendSnapshot(client)

	default:
		logger.Debug("WebSocket: unknown message type '%s' from client %s", wsMessage.Type, client.ID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) sendSnapshot(client *Client) {
	if m.snapshot == nil {
		return
	}
	m.sendToClient(client, WSMessage{Type: MessageTypeSnapshot, Data: m.snapshot()})
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	if message.Timestamp == "" {
		message.Timestamp = time.Now().Format(time.RFC3339)
	}
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("WebSocket: failed to marshal message: %v", err)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if _, ok := m.clients[client.ID]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket: send buffer full for client %s", client.ID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, WSMessage{
		Type: MessageTypeError,
		Data: map[string]string{"message": errorMsg},
	})
}
