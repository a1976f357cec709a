package services

import (
	"log"
	"net/http"
	"sync"

	"pagebinder-notes/pagebinder/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketServiceInterface interface {
	HandleConnection(c *gin.Context)
	BroadcastEvent(event models.Event)
	Stop()
}

// WebSocketService pushes dispatched events to connected UI clients so the
// tree view can refresh without polling. Clients are write-only; inbound
// messages are drained and discarded.
type WebSocketService struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is bound to localhost for a single desktop user;
			// origin filtering happens in the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (s *WebSocketService) HandleConnection(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go s.readLoop(conn)
}

func (s *WebSocketService) readLoop(conn *websocket.Conn) {
	defer s.removeClient(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *WebSocketService) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *WebSocketService) BroadcastEvent(event models.Event) {
	payload, err := event.ToJSON()
	if err != nil {
		log.Printf("Failed to serialize event %s: %v", event.ID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

func (s *WebSocketService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

var WebSocketServiceInstance WebSocketServiceInterface
