package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
	"github.com/ternarybob/apteka/internal/services/finder"
	"github.com/ternarybob/apteka/internal/services/render"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WSMessage is the envelope of every server -> client message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SearchRequestMessage is sent by the client to start a search
type SearchRequestMessage struct {
	Address string `json:"address"`
}

// SearchResultPayload carries a finished search
type SearchResultPayload struct {
	Response *models.SearchResponse `json:"response"`
	HTML     string                 `json:"html"`
}

type WebSocketHandler struct {
	finder  interfaces.FinderService
	logger  arbor.ILogger
	clients map[*websocket.Conn]*sync.Mutex
	mu      sync.RWMutex
}

func NewWebSocketHandler(finder interfaces.FinderService, logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		finder:  finder,
		logger:  logger,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// HandleWebSocket handles WebSocket connections.
// Each connection owns a search session: a new search request supersedes the
// one in flight and the superseded search gets no reply.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	writeMu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = writeMu
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", clientCount)

	ctx, cancel := context.WithCancel(context.Background())
	session := finder.NewSession(h.finder)
	var pending sync.WaitGroup

	// Handle client disconnection
	defer func() {
		cancel()
		session.Close()
		pending.Wait()

		h.mu.Lock()
		delete(h.clients, conn)
		clientCount := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", clientCount)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}

		var req SearchRequestMessage
		if err := json.Unmarshal(data, &req); err != nil {
			h.send(conn, writeMu, WSMessage{
				Type:    "error",
				Payload: map[string]string{"error": "invalid message: expected {\"address\": \"...\"}"},
			})
			continue
		}

		// Claim the slot here, in arrival order, before the search goroutine starts
		address := req.Address
		ticket := session.Begin(ctx)

		pending.Add(1)
		common.SafeGo(h.logger, "websocket-search", func() {
			defer pending.Done()

			resp, delivered := ticket.Run(address)
			if !delivered {
				h.logger.Debug().Str("address", address).Msg("Search superseded, reply dropped")
				return
			}

			html, err := render.HTML(resp)
			if err != nil {
				h.logger.Warn().Err(err).Str("search_id", resp.SearchID).Msg("Failed to render results")
			}

			h.send(conn, writeMu, WSMessage{
				Type:    "result",
				Payload: SearchResultPayload{Response: resp, HTML: html},
			})
		})
	}
}

// send writes msg to conn; writes on one connection are serialised by mu
func (h *WebSocketHandler) send(conn *websocket.Conn, mu *sync.Mutex, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to marshal WebSocket message")
		return
	}

	mu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	mu.Unlock()

	if err != nil {
		h.logger.Warn().Err(err).Str("type", msg.Type).Msg("Failed to send WebSocket message")
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
