package viewfeed

import (
	"context"
	"net/http"
	"sync"
	"time"

	"stagecast/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Config tunes the websocket feed.
type Config struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
}

// Server pushes the session view model to connected clients over
// WebSocket. Every client receives the current view model on connect,
// then an update after each state change.
type Server struct {
	controller ports.SessionController

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	pingInterval time.Duration
	writeTimeout time.Duration

	logger *zap.SugaredLogger
}

func NewServer(controller ports.SessionController, cfg Config, logger *zap.SugaredLogger) *Server {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &Server{
		controller:   controller,
		clients:      make(map[*websocket.Conn]struct{}),
		pingInterval: cfg.PingInterval,
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
	}
}

func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	clientCount := len(s.clients)
	s.mu.Unlock()

	s.logger.Infow("viewfeed client connected",
		"remote_addr", r.RemoteAddr,
		"clients", clientCount,
	)

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		s.logger.Infow("viewfeed client disconnected", "remote_addr", r.RemoteAddr)
	}()

	updates, cancel := s.controller.Subscribe()
	defer cancel()

	// Drain incoming frames so close and pong handling work. Clients do
	// not send application messages on this feed.
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	// Send the current state first so a new client does not wait for
	// the next change.
	vm, err := s.controller.GetViewModel(r.Context())
	if err != nil {
		s.logger.Errorw("failed to build initial view model", "error", err)
		return
	}
	if err := s.writeJSON(conn, vm); err != nil {
		return
	}

	pingTicker := time.NewTicker(s.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case vm, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeJSON(conn, vm); err != nil {
				s.logger.Debugw("viewfeed write failed", "error", err)
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readErr:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return conn.WriteJSON(v)
}

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Shutdown closes all client connections.
func (s *Server) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(s.writeTimeout))
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
}
