package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"spicysweet/internal/model"
	"spicysweet/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades session clients and bridges the store's change feed
// into the hub: the first connection for a code subscribes, the last
// one unsubscribes. Connection teardown is what realizes the store's
// disconnect hook: it flips the player's isOnline flag off.
type Handler struct {
	hub        *Hub
	authSvc    *service.AuthService
	sessionSvc *service.SessionService

	mu     sync.Mutex
	unsubs map[string]func()
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, sessionSvc *service.SessionService) *Handler {
	return &Handler{
		hub:        hub,
		authSvc:    authSvc,
		sessionSvc: sessionSvc,
		unsubs:     make(map[string]func()),
	}
}

// SessionWS handles GET /v1/ws/sessions/{code}. With a valid token the
// client connects as its player; without one it gets the read-only
// spectator fallback and no presence writes happen for it.
func (h *Handler) SessionWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	token := r.URL.Query().Get("token")

	playerID := ""
	spectator := true
	if token != "" {
		claims, err := h.authSvc.ValidatePlayerToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if claims.SessionCode != code {
			http.Error(w, "token not valid for this session", http.StatusForbidden)
			return
		}
		playerID = claims.PlayerID
		spectator = false
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	conn := &Connection{
		SessionCode: code,
		PlayerID:    playerID,
		Spectator:   spectator,
		Send:        make(chan []byte, 256),
	}
	conn.OnClose = func() { h.onClose(conn) }

	if err := h.ensureSubscribed(code); err != nil {
		log.Printf("[ws] subscribe failed for %s: %v", code, err)
		wsConn.Close()
		return
	}

	h.hub.Register(conn)

	if !spectator {
		if _, err := h.sessionSvc.SetOnline(context.Background(), code, playerID, true); err != nil {
			log.Printf("[ws] presence online failed for %s/%s: %v", code, playerID, err)
		}
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

// ensureSubscribed attaches one store subscription per active session.
func (h *Handler) ensureSubscribed(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.unsubs[code]; ok {
		return nil
	}
	unsub, err := h.sessionSvc.Subscribe(context.Background(), code, func(s *model.Session) {
		h.hub.BroadcastToSession(code, MsgSessionState, s)
	})
	if err != nil {
		return err
	}
	h.unsubs[code] = unsub
	return nil
}

// onClose runs presence cleanup when the hub drops a connection. The
// player record survives; only isOnline flips.
func (h *Handler) onClose(conn *Connection) {
	if !conn.Spectator {
		if _, err := h.sessionSvc.SetOnline(context.Background(), conn.SessionCode, conn.PlayerID, false); err != nil {
			log.Printf("[ws] presence offline failed for %s/%s: %v", conn.SessionCode, conn.PlayerID, err)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hub.ClientCount(conn.SessionCode) == 0 {
		if unsub, ok := h.unsubs[conn.SessionCode]; ok {
			unsub()
			delete(h.unsubs, conn.SessionCode)
		}
	}
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			break
		}
		// All state changes go through REST transactions; inbound
		// frames only keep the connection alive.
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
