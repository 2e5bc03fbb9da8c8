package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tristanguckenberger/srcdoc-server/internal/logger"
)

// registerMessage is the only inbound message type the live endpoint
// understands.
type registerMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// wsClient wraps a websocket connection behind the Pusher interface.
// gorilla/websocket allows at most one concurrent writer, so pushes
// are serialized through a mutex.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Push(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Handler upgrades HTTP requests to websocket connections and keeps
// the registry in sync with their lifecycle.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	client := &wsClient{conn: conn}
	var userID string

	defer func() {
		if userID != "" {
			h.registry.Drop(userID, client)
			logger.Info("user disconnected", map[string]any{
				"user_id": userID,
			})
		}
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg registerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("unparseable live message", map[string]any{
				"error": err.Error(),
			})
			continue
		}

		if msg.Type != "register" || msg.UserID == "" {
			continue
		}

		// Re-registering under a new identity releases the old one.
		if userID != "" && userID != msg.UserID {
			h.registry.Drop(userID, client)
		}

		userID = msg.UserID
		h.registry.Register(userID, client)
		logger.Info("user registered", map[string]any{
			"user_id": userID,
		})
	}
}
