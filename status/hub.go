package status

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// StageEvent is one progress notification: a pipeline stage finished with
// the given row count. Events are advisory observability output; dropping
// them never affects the batch itself.
type StageEvent struct {
	RunID     string    `json:"runId"`
	Stage     string    `json:"stage"`
	Rows      int       `json:"rows"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// client is one connected websocket subscriber.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans stage events out to connected websocket subscribers.
type Hub struct {
	Broadcast  chan StageEvent
	register   chan *client
	unregister chan *client
	clients    map[*client]bool
	logger     *utils.ETLLogger
}

// NewHub creates a new Hub.
func NewHub(logger *utils.ETLLogger) *Hub {
	return &Hub{
		Broadcast:  make(chan StageEvent, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		clients:    make(map[*client]bool),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until the channels close.
// Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Debug("Status subscriber connected (%d active)", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Debug("Status subscriber disconnected (%d active)", len(h.clients))
			}

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("encoding stage event: %v", err)
				continue
			}
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Slow subscriber; drop it rather than block the run.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Publish offers an event to the hub without ever blocking the pipeline.
func (h *Hub) Publish(event StageEvent) {
	if h == nil {
		return
	}
	select {
	case h.Broadcast <- event:
	default:
	}
}
