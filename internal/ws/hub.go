package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Logger defines minimal logging interface required by the hub.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// Hub keeps one websocket connection per user and pushes JSON payloads to it.
// A newer connection from the same user replaces the older one.
type Hub struct {
	name   string
	logger Logger

	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*websocket.Conn
	locks map[string]*sync.Mutex
}

// NewHub constructs a hub. name is used in log lines only.
func NewHub(name string, logger Logger) *Hub {
	return &Hub{
		name:   name,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*websocket.Conn),
		locks: make(map[string]*sync.Mutex),
	}
}

// ServeWS upgrades the request and registers the connection for userID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	if userID == "" {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("%s ws upgrade failed: %v", h.name, err)
		}
		return
	}

	h.mu.Lock()
	if old, ok := h.conns[userID]; ok {
		_ = old.Close()
	}
	h.conns[userID] = conn
	if _, ok := h.locks[userID]; !ok {
		h.locks[userID] = &sync.Mutex{}
	}
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Infof("%s ws user %s connected", h.name, userID)
	}

	go h.pingLoop(userID, conn)
	go h.readLoop(userID, conn)
}

// Connected reports whether userID has a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Push sends payload to the user's connection if there is one.
func (h *Hub) Push(userID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("%s ws marshal failed: %v", h.name, err)
		}
		return
	}
	h.safeWrite(userID, func(conn *websocket.Conn) error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
}

func (h *Hub) pingLoop(userID string, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.RLock()
		alive := h.conns[userID] == conn
		h.mu.RUnlock()
		if !alive {
			return
		}
		h.safeWrite(userID, func(c *websocket.Conn) error {
			return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
	}
}

func (h *Hub) readLoop(userID string, conn *websocket.Conn) {
	defer h.closeConn(userID, conn)

	conn.SetReadLimit(16 << 10)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(message)), "ping") {
			h.safeWrite(userID, func(c *websocket.Conn) error {
				return c.WriteMessage(websocket.TextMessage, []byte("pong"))
			})
		}
	}
}

func (h *Hub) closeConn(userID string, conn *websocket.Conn) {
	_ = conn.Close()
	h.mu.Lock()
	if current, ok := h.conns[userID]; ok && current == conn {
		delete(h.conns, userID)
		delete(h.locks, userID)
	}
	h.mu.Unlock()
}

func (h *Hub) safeWrite(userID string, fn func(*websocket.Conn) error) {
	h.mu.RLock()
	conn := h.conns[userID]
	mu := h.locks[userID]
	h.mu.RUnlock()
	if conn == nil || mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(conn); err != nil {
		if h.logger != nil {
			h.logger.Errorf("%s ws user %s write failed: %v", h.name, userID, err)
		}
		h.closeConn(userID, conn)
	}
}
