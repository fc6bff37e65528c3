package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sticktoon/badge-engine/internal/session"
)

// WebSocket message types
const (
	EventPointerDown   = "pointer_down"
	EventPointerMove   = "pointer_move"
	EventPointerUp     = "pointer_up"
	EventWheel         = "wheel"
	EventState         = "state"
	EventSessionOpened = "session_opened"
	EventSessionClosed = "session_closed"
	EventError         = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// WSClient represents a connected WebSocket client
type WSClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	server *Server
	mu     sync.Mutex
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		fmt.Printf("WebSocket upgrade failed: %v\n", err)
		return
	}

	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 256),
		server: s,
	}

	fmt.Println("📡 WebSocket client connected")

	// Start goroutines
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
			fmt.Printf("WebSocket write error: %v\n", err)
			return
		}
	}
}

func (c *WSClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventPointerDown:
		c.handlePointerDown(msg.Data)
	case EventPointerMove:
		c.handlePointerMove(msg.Data)
	case EventPointerUp:
		c.handlePointerUp(msg.Data)
	case EventWheel:
		c.handleWheel(msg.Data)
	default:
		c.sendError(fmt.Sprintf("unknown event: %s", msg.Event))
	}
}

// sessionFor resolves the session referenced by an event payload.
func (c *WSClient) sessionFor(data map[string]interface{}) *session.Session {
	sessionID, ok := data["session_id"].(string)
	if !ok || sessionID == "" {
		c.sendError("session_id is required")
		return nil
	}

	sess := c.server.sessions.Get(sessionID)
	if sess == nil {
		c.sendError(fmt.Sprintf("session not found: %s", sessionID))
		return nil
	}

	return sess
}

func (c *WSClient) handlePointerDown(data map[string]interface{}) {
	sess := c.sessionFor(data)
	if sess == nil {
		return
	}

	elementID, _ := data["element_id"].(string)
	x, _ := data["x"].(float64)
	y, _ := data["y"].(float64)

	handle := session.HandleBody
	switch data["handle"] {
	case "resize":
		handle = session.HandleResize
	case "rotate":
		handle = session.HandleRotate
	}

	if !sess.PointerDown(elementID, handle, x, y) {
		c.sendError(fmt.Sprintf("element not found: %s", elementID))
		return
	}

	c.sendState(sess)
}

func (c *WSClient) handlePointerMove(data map[string]interface{}) {
	sess := c.sessionFor(data)
	if sess == nil {
		return
	}

	x, _ := data["x"].(float64)
	y, _ := data["y"].(float64)

	sess.PointerMove(x, y)

	c.sendState(sess)
}

func (c *WSClient) handlePointerUp(data map[string]interface{}) {
	sess := c.sessionFor(data)
	if sess == nil {
		return
	}

	sess.PointerUp()

	c.sendState(sess)
}

func (c *WSClient) handleWheel(data map[string]interface{}) {
	sess := c.sessionFor(data)
	if sess == nil {
		return
	}

	direction, _ := data["direction"].(string)
	if direction != "in" && direction != "out" {
		c.sendError("direction must be 'in' or 'out'")
		return
	}

	zoom := sess.Wheel(direction == "in")

	c.send <- WSMessage{
		Event: EventState,
		Data: map[string]interface{}{
			"session_id": sess.ID,
			"zoom":       zoom,
		},
	}
}

func (c *WSClient) sendState(sess *session.Session) {
	c.send <- WSMessage{
		Event: EventState,
		Data: map[string]interface{}{
			"session_id": sess.ID,
			"selected":   sess.SelectedID(),
			"zoom":       sess.Zoom(),
			"elements":   sess.Elements(),
		},
	}
}

// Client tracking for broadcasts
var (
	clients   = make(map[*WSClient]bool)
	clientsMu sync.RWMutex
)

func addClient(client *WSClient) {
	clientsMu.Lock()
	clients[client] = true
	clientsMu.Unlock()
}

func removeClient(client *WSClient) {
	clientsMu.Lock()
	delete(clients, client)
	clientsMu.Unlock()
}

func (c *WSClient) readPump() {
	defer func() {
		removeClient(c)
		c.conn.Close()
		fmt.Println("📡 WebSocket client disconnected")
	}()

	addClient(c)

	for {
		var msg WSMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("WebSocket error: %v\n", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *WSClient) sendError(message string) {
	c.send <- WSMessage{
		Event: EventError,
		Data: map[string]interface{}{
			"error": message,
		},
	}
}

// BroadcastSessionOpened broadcasts a session opened event to all connected clients
func (s *Server) BroadcastSessionOpened(sess *session.Session) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	message := WSMessage{
		Event: EventSessionOpened,
		Data: map[string]interface{}{
			"id":         sess.ID,
			"created_at": sess.CreatedAt,
		},
	}

	for client := range clients {
		select {
		case client.send <- message:
		default:
			// Client send buffer full, skip
		}
	}
}

// BroadcastSessionClosed broadcasts a session closed event to all connected clients
func (s *Server) BroadcastSessionClosed(sessionID string) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()

	message := WSMessage{
		Event: EventSessionClosed,
		Data: map[string]interface{}{
			"id": sessionID,
		},
	}

	for client := range clients {
		select {
		case client.send <- message:
		default:
			// Client send buffer full, skip
		}
	}
}
