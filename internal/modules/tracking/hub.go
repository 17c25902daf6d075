package tracking

import (
	"encoding/json"
	"sync"
	"time"

	"ecowaste/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// client is a single WebSocket subscriber.
type client struct {
	accountID int64
	admin     bool
	conn      *websocket.Conn
	send      chan []byte
}

// Hub fans pickup events out to the owning account and to every connected admin.
// An account may hold several connections (tabs, devices).
type Hub struct {
	mu       sync.RWMutex
	accounts map[int64]map[*client]struct{}
	admins   map[*client]struct{}
	loggerf  func(format string, args ...interface{})
}

func NewHub(loggerf func(format string, args ...interface{})) *Hub {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Hub{
		accounts: make(map[int64]map[*client]struct{}),
		admins:   make(map[*client]struct{}),
		loggerf:  loggerf,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.accounts[c.accountID]
	if !ok {
		set = make(map[*client]struct{})
		h.accounts[c.accountID] = set
	}
	set[c] = struct{}{}
	if c.admin {
		h.admins[c] = struct{}{}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.accounts[c.accountID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.accounts, c.accountID)
	}
	delete(h.admins, c)
	close(c.send)
}

// Publish implements the pickup and payment event sinks. It never blocks:
// a subscriber whose buffer is full misses the event.
func (h *Hub) Publish(event domain.PickupEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.loggerf("level=error msg=tracking marshal failed type=%s err=%v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.accounts[event.AccountID] {
		h.deliver(c, data)
	}
	for c := range h.admins {
		if c.accountID == event.AccountID {
			continue
		}
		h.deliver(c, data)
	}
}

func (h *Hub) deliver(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.loggerf("level=warn msg=tracking subscriber too slow account_id=%d", c.accountID)
	}
}

// ConnectionCount reports open subscriber connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.accounts {
		n += len(set)
	}
	return n
}

// Close drops every subscriber. Their write loops send a close frame and exit.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.accounts {
		for c := range set {
			close(c.send)
		}
		delete(h.accounts, id)
	}
	h.admins = make(map[*client]struct{})
}

// serve registers conn and runs its loops. It blocks until the client disconnects.
func (h *Hub) serve(conn *websocket.Conn, accountID int64, admin bool) {
	c := &client{
		accountID: accountID,
		admin:     admin,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
	h.register(c)
	h.loggerf("level=info msg=tracking connected account_id=%d admin=%t", accountID, admin)

	go h.writePump(c)
	h.readPump(c)
	h.loggerf("level=info msg=tracking disconnected account_id=%d", accountID)
}

// readPump only services control frames; clients have nothing to say.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.loggerf("level=warn msg=tracking read error account_id=%d err=%v", c.accountID, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
