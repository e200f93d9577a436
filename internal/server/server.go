package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/protocol"
)

// Server exposes the game service over HTTP JSON and WebSocket
type Server struct {
	addr         string
	upgrader     websocket.Upgrader
	connections  map[*Connection]bool
	logger       *log.Logger
	mu           sync.RWMutex
	gameService  *GameService
	httpServer   *http.Server
	maxBodyBytes int64
}

// Option configures a Server
type Option func(*Server)

// WithMaxBodyBytes limits the size of HTTP request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new server bound to addr
func NewServer(addr string, gameService *GameService, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// The engine is stateless and holds no credentials, so any origin may play.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections:  make(map[*Connection]bool),
		logger:       logger.WithPrefix("server"),
		gameService:  gameService,
		maxBodyBytes: 64 << 10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/api/game", s.handleGame)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting blackjack server", "addr", s.addr)
	return srv.ListenAndServe()
}

// Shutdown closes every WebSocket connection and stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ConnectionCount returns the number of open WebSocket connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()

	_ = conn.Close() // Ignore close errors during unregistration
	s.logger.Info("Client disconnected", "total", total)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleGame applies one action posted as JSON
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var req protocol.Request
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, requestID, fmt.Errorf("%w: %v", protocol.ErrMalformedMessage, err))
		return
	}

	state, err := s.gameService.Handle(r.Context(), req)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, state)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.gameService)
	s.register(client)
	client.Start()

	go func() {
		<-client.Done()
		s.unregister(client)
	}()
}

// recoverer is middleware.Recoverer with an internal_error JSON body in
// place of the bare 500
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())
				s.logger.Error("Recovered from panic", "panic", rvr, "path", r.URL.Path, "request_id", requestID)
				s.writeError(w, requestID, errors.New("panic"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	data := protocol.NewErrorData(err)
	status := protocol.StatusFor(data.Code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "request_id", requestID, "error", err)
	} else {
		s.logger.Debug("Request rejected", "request_id", requestID, "code", data.Code, "error", err)
	}

	s.writeJSON(w, status, protocol.ErrorResponse{Error: data})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

// NewEngineFromConfig builds the engine described by cfg using src for shuffles
func NewEngineFromConfig(cfg GameSettings, src deck.Source) *blackjack.Engine {
	return blackjack.NewEngine(src,
		blackjack.WithBaseBet(cfg.BaseBet),
		blackjack.WithInitialBankroll(cfg.InitialBankroll))
}
