package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSessionState MessageType = "session_state"
	MsgSessionGone  MessageType = "session_gone"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per session. Every committed store
// change is fanned out as a full session snapshot; clients re-derive
// their view from it rather than from operation responses.
type Hub struct {
	conns map[string]map[*Connection]struct{} // session code -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one client of a session. PlayerID is empty for
// spectators, which only ever receive.
type Connection struct {
	SessionCode string
	PlayerID    string
	Spectator   bool
	Send        chan []byte

	// OnClose runs once when the hub drops the connection; the handler
	// uses it for presence cleanup and store unsubscription.
	OnClose func()
}

// BroadcastMessage is a message to broadcast to one session's clients.
type BroadcastMessage struct {
	SessionCode string
	Message     *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionCode] == nil {
				h.conns[conn.SessionCode] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionCode][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[ws] client %s connected to session %s", conn.PlayerID, conn.SessionCode)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.SessionCode]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.conns, conn.SessionCode)
					}
				}
			}
			h.mu.Unlock()
			if conn.OnClose != nil {
				conn.OnClose()
			}
			log.Printf("[ws] client %s disconnected from session %s", conn.PlayerID, conn.SessionCode)

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SessionCode] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession sends a message to every client of a session.
func (h *Hub) BroadcastToSession(code string, msgType MessageType, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionCode: code,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}

// ClientCount returns how many connections a session currently has.
func (h *Hub) ClientCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[code])
}
