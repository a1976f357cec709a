package services

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/models"
)

func (s *WebSocketService) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func TestWebSocketService_BroadcastReachesConnectedClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := NewWebSocketService()
	defer service.Stop()

	router := gin.New()
	router.GET("/ws", service.HandleConnection)

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return service.clientCount() == 1
	}, time.Second, 10*time.Millisecond)

	event, err := models.NewEvent(string(broker.PageUpdated), "page", map[string]interface{}{"page_id": "p1"})
	require.NoError(t, err)

	service.BroadcastEvent(*event)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	messageType, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.Contains(t, string(payload), string(broker.PageUpdated))
}

func TestWebSocketService_StopDisconnectsClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := NewWebSocketService()

	router := gin.New()
	router.GET("/ws", service.HandleConnection)

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return service.clientCount() == 1
	}, time.Second, 10*time.Millisecond)

	service.Stop()
	assert.Zero(t, service.clientCount())

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
