package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgStatsUpdate       MessageType = "stats_update"
	MsgResponseSubmitted MessageType = "response_submitted"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections, keyed by survey version.
// Admin dashboards subscribe to one version and receive refreshed population
// statistics as the response population grows.
type Hub struct {
	// surveyVersion -> connID -> connection
	dashboards map[string]map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	ID            string
	SurveyVersion string
	Send          chan []byte
	Hub           *Hub
}

// BroadcastMessage is a message to broadcast to one version's dashboards
type BroadcastMessage struct {
	SurveyVersion string
	Message       *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		dashboards: make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.dashboards[conn.SurveyVersion] == nil {
				h.dashboards[conn.SurveyVersion] = make(map[string]*Connection)
			}
			h.dashboards[conn.SurveyVersion][conn.ID] = conn
			log.Printf("Dashboard %s subscribed to version %s", conn.ID, conn.SurveyVersion)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.dashboards[conn.SurveyVersion]; ok {
				if existing, ok := conns[conn.ID]; ok && existing == conn {
					delete(conns, conn.ID)
					close(conn.Send)
					log.Printf("Dashboard %s unsubscribed from version %s", conn.ID, conn.SurveyVersion)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for _, conn := range h.dashboards[msg.SurveyVersion] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToDashboards sends a message to every dashboard subscribed to a
// survey version (implements service.Broadcaster)
func (h *Hub) BroadcastToDashboards(surveyVersion string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SurveyVersion: surveyVersion,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
