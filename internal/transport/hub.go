// Package transport serves a gorilla/websocket JSON gateway over mahjong
// tables, grounded on runtime/conn/worker.go's sharded-bucket connection
// management (simplified: one hub, one mutex-guarded map — mahjongd tables
// are 4 seats, not a matchmaking-scale connector).
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mahjong/internal/logging"
)

const (
	readDeadline  = 120 * time.Second
	writeDeadline = 10 * time.Second
	sendBuffer    = 64
)

// Envelope is the wire message: Type selects the HandlerFunc, Payload is
// handler-specific JSON.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HandlerFunc processes one decoded client message and returns the
// response payload to envelope back to the caller.
type HandlerFunc func(c *Client, payload json.RawMessage) (any, error)

// Hub tracks connected clients and routes inbound messages by Envelope.Type.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client

	handlers map[string]HandlerFunc
}

// NewHub builds a Hub with CheckOrigin permissive (mirrors worker.go's
// default CheckOriginHandler — tighten at the edge, not here).
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:       func(r *http.Request) bool { return true },
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
			EnableCompression: true,
		},
		clients:  make(map[string]*Client),
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers the handler invoked for messages of the given type.
func (h *Hub) Handle(msgType string, fn HandlerFunc) {
	h.handlers[msgType] = fn
}

// Client is one live websocket connection.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// TableID/Seat are set by the join handler once the client identifies
	// which table and seat it occupies; empty/−1 until then.
	TableID string
	Seat    int
}

// ServeWS upgrades the request and starts the client's read/write pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("transport: upgrade failed: %v", err)
		return
	}

	c := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		Seat: -1,
	}

	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	logging.Info("transport: client connected id=%s remote=%s", c.ID, r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.ID)
	h.mu.Unlock()
}

// Send enqueues a JSON-encoded envelope to a single client, if still connected.
func (h *Hub) Send(clientID string, msgType string, payload any) error {
	h.mu.RLock()
	c, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.sendEnvelope(msgType, payload)
}

// Broadcast fans an envelope out to every client currently seated at tableID.
func (h *Hub) Broadcast(tableID string, msgType string, payload any) {
	h.mu.RLock()
	targets := make([]*Client, 0, 4)
	for _, c := range h.clients {
		if c.TableID == tableID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.sendEnvelope(msgType, payload); err != nil {
			logging.Warn("transport: broadcast to %s failed: %v", c.ID, err)
		}
	}
}

func (c *Client) sendEnvelope(msgType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(Envelope{Type: msgType, Payload: body})
	if err != nil {
		return err
	}
	select {
	case c.send <- buf:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn("transport: read error id=%s: %v", c.ID, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logging.Warn("transport: bad envelope id=%s: %v", c.ID, err)
			continue
		}

		handler, ok := c.hub.handlers[env.Type]
		if !ok {
			_ = c.sendEnvelope("error", map[string]string{"message": "unknown message type: " + env.Type})
			continue
		}

		result, err := handler(c, env.Payload)
		if err != nil {
			_ = c.sendEnvelope("error", map[string]string{"message": err.Error()})
			continue
		}
		if result != nil {
			_ = c.sendEnvelope(env.Type+"_ack", result)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(writeDeadline / 2)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
