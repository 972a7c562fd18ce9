// Package events fans out list invalidations to every open console tab of
// the admin who made a change, so other tabs can refetch.
package events

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// Event says that a screen's list changed.
type Event struct {
	AdminID string `json:"-"`
	Screen  string `json:"screen"`
	Action  string `json:"action"`
	ID      string `json:"id,omitempty"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Hub tracks WebSocket clients per admin and broadcasts events to them.
type Hub struct {
	clients   map[string]map[*websocket.Conn]bool
	broadcast chan Event
	mu        sync.Mutex
	upgrader  websocket.Upgrader
	done      chan struct{}
}

// NewHub creates a hub and starts its broadcast loop. buffer is the number
// of pending events held before new ones are dropped.
func NewHub(buffer int, checkOrigin func(r *http.Request) bool) *Hub {
	if buffer < 1 {
		buffer = 100
	}
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	h := &Hub{
		clients:   make(map[string]map[*websocket.Conn]bool),
		broadcast: make(chan Event, buffer),
		done:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)
	for ev := range h.broadcast {
		h.mu.Lock()
		conns := make([]*websocket.Conn, 0, len(h.clients[ev.AdminID]))
		for conn := range h.clients[ev.AdminID] {
			conns = append(conns, conn)
		}
		h.mu.Unlock()

		for _, conn := range conns {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"admin_id": ev.AdminID,
					"conn_ptr": fmt.Sprintf("%p", conn),
				}).Info("Event client write failed, unregistering.")
				h.Unregister(ev.AdminID, conn)
				conn.Close()
			}
		}
	}
}

func (h *Hub) Register(adminID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[adminID]; !ok {
		h.clients[adminID] = make(map[*websocket.Conn]bool)
	}
	h.clients[adminID][conn] = true
	logrus.WithFields(logrus.Fields{
		"admin_id": adminID,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Client registered with event hub.")
}

func (h *Hub) Unregister(adminID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[adminID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, adminID)
		}
	}
}

// Clients is the number of open connections for adminID.
func (h *Hub) Clients(adminID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[adminID])
}

// Publish queues ev for delivery. A full queue drops the event.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithFields(logrus.Fields{
			"admin_id": ev.AdminID,
			"screen":   ev.Screen,
			"action":   ev.Action,
		}).Warn("Event broadcast channel full, dropping event.")
	}
}

// Serve upgrades the request and keeps the socket registered until the
// client goes away. Incoming messages are ignored.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, adminID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	h.Register(adminID, conn)
	defer h.Unregister(adminID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("admin_id", adminID).Warn("Event socket closed unexpectedly.")
			}
			return
		}
	}
}

// Close stops the broadcast loop. Publish must not be called afterwards.
func (h *Hub) Close() {
	close(h.broadcast)
	<-h.done
}
