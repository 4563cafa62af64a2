package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/metrics"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	orderChannel = "order_events"
	sendBuffer   = 32
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
	pongWait     = 2 * pingPeriod
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	session auth.Session
	send    chan []byte
}

// Hub fans order events out to websocket clients. With a Redis client every
// instance publishes to and subscribes from one channel, so a mutation on any
// instance reaches clients connected to all of them.
type Hub struct {
	rdb       *redis.Client
	log       logger.Logger
	broadcast chan models.OrderEvent

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub. rdb may be nil for a single instance.
func NewHub(rdb *redis.Client, log logger.Logger) *Hub {
	return &Hub{
		rdb:       rdb,
		log:       log,
		broadcast: make(chan models.OrderEvent, 256),
		clients:   make(map[*client]struct{}),
	}
}

// PublishOrderEvent never blocks the caller on slow consumers.
func (h *Hub) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) {
	if h.rdb != nil {
		payload, err := json.Marshal(ev)
		if err == nil {
			if err = h.rdb.Publish(ctx, orderChannel, payload).Err(); err == nil {
				return
			}
		}
		h.log.Warn("order event publish failed, delivering locally", "order_id", ev.OrderID, "error", err)
	}

	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("order event dropped, broadcast queue full", "order_id", ev.OrderID)
	}
}

// Run delivers events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	var remote <-chan *redis.Message
	if h.rdb != nil {
		pubsub := h.rdb.Subscribe(ctx, orderChannel)
		defer pubsub.Close()
		remote = pubsub.Channel()
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev := <-h.broadcast:
			h.deliver(ev)
		case msg, ok := <-remote:
			if !ok {
				remote = nil
				continue
			}
			var ev models.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("failed to decode order event from redis", "error", err)
				continue
			}
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev models.OrderEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !canSee(c.session, ev) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow client; the writer notices the closed socket and unregisters it.
			h.log.Debug("order feed client lagging, message skipped", "user_id", c.session.UserID)
		}
	}
}

// canSee limits clients to events about their own orders.
func canSee(s auth.Session, ev models.OrderEvent) bool {
	if s.IsClient() {
		return ev.UserID == s.UserID
	}
	return true
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WebsocketClients.Set(float64(n))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WebsocketClients.Set(float64(n))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	metrics.WebsocketClients.Set(0)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades an authenticated request and streams order events to it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{session: session, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go h.writeLoop(conn, c)
	h.readLoop(conn, c)
}

// readLoop only watches for close and pong frames.
func (h *Hub) readLoop(conn *websocket.Conn, c *client) {
	defer func() {
		h.unregister(c)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
