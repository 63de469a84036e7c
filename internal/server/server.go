package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/core/query"
)

// Server exposes the query engine over HTTP and websocket.
type Server struct {
	engine *query.Engine
	config config.ServerConfig
	logger log.Log

	httpServer *http.Server
	listener   net.Listener
	upgrader   websocket.Upgrader

	// Websocket connections are hijacked and not closed by Shutdown.
	conns     sync.Map // map[*websocket.Conn]struct{}
	connCount int64    // atomic

	running int32 // atomic bool
	closed  int32 // atomic bool
	served  sync.WaitGroup
}

// NewServer creates a server. It does not listen until Start.
func NewServer(cfg config.ServerConfig, engine *query.Engine, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Server{
		engine: engine,
		config: cfg,
		logger: logger.With(log.String("component", "server")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	s.logger.Info("Server created",
		log.String("listen_addr", cfg.ListenAddr),
		log.Int("max_message_size", int(cfg.MaxMessageSize)))

	return s
}

// Handler returns the routing table. Useful for embedding and tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %v", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.served.Add(1)
	go func() {
		defer s.served.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr is the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP listener down and closes open websocket connections.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	err := s.httpServer.Shutdown(ctx)
	s.conns.Range(func(key, _ any) bool {
		_ = key.(*websocket.Conn).Close()
		return true
	})
	s.served.Wait()

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if running. A closed server cannot be restarted.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&s.running) == 1 {
		return s.Stop(context.Background())
	}
	return nil
}

// Connections is the number of open websocket connections.
func (s *Server) Connections() int {
	return int(atomic.LoadInt64(&s.connCount))
}

// Evaluate runs one wire request. Input errors are reported in the response
// and also returned so transports can pick a status.
func (s *Server) Evaluate(ctx context.Context, req *WireRequest) (*WireResponse, error) {
	decoded, err := req.Decode()
	if err != nil {
		return &WireResponse{Tuples: [][]any{}, Error: err.Error()}, err
	}
	res, err := s.engine.EvaluateWith(ctx, jsonEncoder{}, decoded)
	if err != nil {
		return &WireResponse{Tuples: [][]any{}, Error: err.Error()}, err
	}
	return encodeResult(res), nil
}
