package status

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the pipeline's advisory status surface: the run journal
// over HTTP and live stage events over websocket.
type Server struct {
	hub     *Hub
	runLogs models.RunLogRepository
	logger  *utils.ETLLogger
}

// NewServer creates a new status Server.
func NewServer(hub *Hub, runLogs models.RunLogRepository, logger *utils.ETLLogger) *Server {
	return &Server{hub: hub, runLogs: runLogs, logger: logger}
}

// SetupRoutes registers the status endpoints on the router.
func (s *Server) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	router.HandleFunc("/api/runs", s.handleRuns).Methods("GET")
	router.HandleFunc("/ws", s.handleWebsocket)
}

// Listen runs the status server on addr. Blocks until the listener fails.
func (s *Server) Listen(addr string) error {
	router := mux.NewRouter()
	s.SetupRoutes(router)
	s.logger.Info("Status server listening on %s", addr)
	return http.ListenAndServe(addr, router)
}

// handleStatus returns the most recent successful run.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	lastRun, err := s.runLogs.GetLastSuccessfulRun()
	if err != nil {
		http.Error(w, "could not read run log", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if lastRun == nil {
		json.NewEncoder(w).Encode(map[string]any{"status": "never_run"})
		return
	}
	json.NewEncoder(w).Encode(lastRun)
}

// handleRuns returns the recent run journal, newest first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.runLogs.GetRecentRuns(limit)
	if err != nil {
		http.Error(w, "could not read run log", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"runs": runs})
}

// handleWebsocket upgrades the connection and streams stage events until
// the subscriber goes away.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	s.hub.register <- c

	go func() {
		defer func() {
			s.hub.unregister <- c
			conn.Close()
		}()
		for payload := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	// Drain reads so close frames are processed; subscribers never send.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.unregister <- c
				return
			}
		}
	}()
}
