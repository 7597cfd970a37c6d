package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thestorefront/storefront-engine/internal/cart"
)

// WebSocket event types
const (
	EventCartGet        = "cart_get"
	EventCartUpdated    = "cart_updated"
	EventOrderCompleted = "order_completed"
	EventResponse       = "response"
	EventError          = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// WSClient represents a connected WebSocket client
type WSClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	server *Server
	mu     sync.Mutex
}

// wsHub tracks connected clients for broadcasts
type wsHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]bool
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*WSClient]bool)}
}

func (h *wsHub) add(client *WSClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *wsHub) remove(client *WSClient) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

func (h *wsHub) broadcast(msg WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			// Client send buffer full, skip
		}
	}
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 256),
		server: s,
	}

	s.log.Info("websocket client connected")

	go client.readPump()
	go client.writePump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(msg)
		c.mu.Unlock()

		if err != nil {
			c.server.log.Warn("websocket write error", "error", err)
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		c.server.hub.remove(c)
		c.conn.Close()
		c.server.log.Info("websocket client disconnected")
	}()

	c.server.hub.add(c)

	for {
		var msg WSMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.log.Warn("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *WSClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventCartGet:
		c.send <- WSMessage{
			Event: EventResponse,
			Data:  cartData(c.server.ledger.State()),
		}
	default:
		c.send <- WSMessage{
			Event: EventError,
			Data:  map[string]any{"error": "unknown event: " + msg.Event},
		}
	}
}

func cartData(state cart.State) map[string]any {
	lines := state.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return map[string]any{
		"lines":    lines,
		"subtotal": state.Subtotal(),
	}
}

// broadcastCartUpdated pushes the fresh snapshot to all connected clients
// after a mutation.
func (s *Server) broadcastCartUpdated(state cart.State) {
	s.hub.broadcast(WSMessage{
		Event: EventCartUpdated,
		Data:  cartData(state),
	})
}

// broadcastOrderCompleted announces a completed checkout
func (s *Server) broadcastOrderCompleted(orderID string, subtotal float64) {
	s.hub.broadcast(WSMessage{
		Event: EventOrderCompleted,
		Data: map[string]any{
			"order_id": orderID,
			"subtotal": subtotal,
		},
	})
}
