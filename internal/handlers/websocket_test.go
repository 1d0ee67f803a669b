package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/models"
)

type resultMessage struct {
	Type    string              `json:"type"`
	Payload SearchResultPayload `json:"payload"`
}

func dialTestServer(t *testing.T, handler *WebSocketHandler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(server.Close)

	// Convert http:// to ws://
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestWebSocket_SearchRoundTrip(t *testing.T) {
	handler := NewWebSocketHandler(staticFinder(), arbor.NewLogger())
	conn := dialTestServer(t, handler)

	require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: "Warszawa"}))

	var msg resultMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "result", msg.Type)
	require.NotNil(t, msg.Payload.Response)
	assert.Equal(t, models.SearchStatusOK, msg.Payload.Response.Status)
	assert.Contains(t, msg.Payload.HTML, "Apteka Centralna")
}

func TestWebSocket_MessageOutcome(t *testing.T) {
	handler := NewWebSocketHandler(staticFinder(), arbor.NewLogger())
	conn := dialTestServer(t, handler)

	require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: "Atlantyda"}))

	var msg resultMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, models.SearchStatusLocationNotFound, msg.Payload.Response.Status)
	assert.Equal(t, models.MessageLocationNotFound, msg.Payload.Response.Message)
}

func TestWebSocket_InvalidMessage(t *testing.T) {
	handler := NewWebSocketHandler(staticFinder(), arbor.NewLogger())
	conn := dialTestServer(t, handler)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
}

func TestWebSocket_SupersededSearchGetsNoReply(t *testing.T) {
	slowFinder := &mockFinderService{
		respondFunc: func(ctx context.Context, address string) *models.SearchResponse {
			if address == "slow" {
				<-ctx.Done()
			}
			return &models.SearchResponse{Address: address, Status: models.SearchStatusOK, Places: []models.PlaceListing{}}
		},
	}

	handler := NewWebSocketHandler(slowFinder, arbor.NewLogger())
	conn := dialTestServer(t, handler)

	require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: "slow"}))
	require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: "fast"}))

	var msg resultMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "fast", msg.Payload.Response.Address)

	// Nothing else arrives for the superseded search
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, data, err := conn.ReadMessage()
	assert.Error(t, err, "unexpected message: %s", string(data))
}

func TestWebSocket_BackToBackSearchesReplyToLatest(t *testing.T) {
	// Every search takes a while unless it is cancelled
	pausingFinder := &mockFinderService{
		respondFunc: func(ctx context.Context, address string) *models.SearchResponse {
			select {
			case <-ctx.Done():
			case <-time.After(300 * time.Millisecond):
			}
			return &models.SearchResponse{Address: address, Status: models.SearchStatusOK, Places: []models.PlaceListing{}}
		},
	}

	handler := NewWebSocketHandler(pausingFinder, arbor.NewLogger())
	conn := dialTestServer(t, handler)

	for i := 0; i < 5; i++ {
		first := fmt.Sprintf("Warszawa %d", i)
		second := fmt.Sprintf("Kraków %d", i)

		require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: first}))
		require.NoError(t, conn.WriteJSON(SearchRequestMessage{Address: second}))

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg resultMessage
		require.NoError(t, conn.ReadJSON(&msg))
		require.NotNil(t, msg.Payload.Response)
		assert.Equal(t, second, msg.Payload.Response.Address, "reply must be for the latest address")
	}

	conn.SetReadDeadline(time.Now().Add(400 * time.Millisecond))
	_, data, err := conn.ReadMessage()
	assert.Error(t, err, "unexpected message: %s", string(data))
}
