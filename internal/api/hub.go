package api

import (
	"net/http"
	"sync"

	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
	"github.com/gorilla/websocket"
)

// StepMessage is one per-step update broadcast to connected dashboards.
type StepMessage struct {
	RunID string               `json:"run_id"`
	Step  int                  `json:"step"`
	Now   float64              `json:"now"`
	Tally orchestrator.Tallies `json:"tally"`
}

// Hub tracks connected websocket clients and fans out StepMessages to all
// of them. It implements orchestrator.Observer indirectly via Broadcast,
// called by whatever wraps the orchestrator run with a run ID.
type Hub struct {
	mu        sync.Mutex
	clients   map[*client]bool
	broadcast chan StepMessage
	upgrader  websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan StepMessage
}

// NewHub builds an empty Hub. Call Run in a goroutine to start fanning out
// broadcast messages.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		broadcast: make(chan StepMessage, 64),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Run drains the broadcast channel and fans each message out to every
// connected client, dropping a client whose send buffer is full rather
// than blocking the whole hub on one slow reader.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for c := range h.clients {
			select {
			case c.send <- msg:
			default:
				close(c.send)
				delete(h.clients, c)
			}
		}
		h.mu.Unlock()
	}
}

// Broadcast queues a StepMessage for delivery to every connected client.
func (h *Hub) Broadcast(msg StepMessage) {
	h.broadcast <- msg
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan StepMessage, 16)}
	s.hub.mu.Lock()
	s.hub.clients[c] = true
	s.hub.mu.Unlock()

	go func() {
		defer conn.Close()
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()
}
