package server

import (
	"bytes"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/ecsquery/internal/core/observability/log"
)

// handleWebSocket serves one request per text frame and answers each with
// one response frame, in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", log.Error(err))
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)
	// Deadlines inherited from the HTTP server would end idle sessions.
	_ = conn.UnderlyingConn().SetDeadline(time.Time{})

	s.conns.Store(conn, struct{}{})
	atomic.AddInt64(&s.connCount, 1)
	logger := s.logger.With(
		log.String("session_id", uuid.NewString()),
		log.String("remote_addr", conn.RemoteAddr().String()))
	logger.Debug("Websocket connected")

	defer func() {
		s.conns.Delete(conn)
		atomic.AddInt64(&s.connCount, -1)
		_ = conn.Close()
		logger.Debug("Websocket disconnected")
	}()

	ctx := r.Context()
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Websocket read failed", log.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var resp *WireResponse
		req, err := ReadRequest(bytes.NewReader(data))
		if err != nil {
			resp = &WireResponse{Tuples: [][]any{}, Error: err.Error()}
		} else {
			resp, err = s.Evaluate(ctx, req)
		}
		if err != nil {
			logger.Debug("Rejected query", log.Error(err))
		}

		if s.config.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err = conn.WriteJSON(resp); err != nil {
			logger.Warn("Websocket write failed", log.Error(err))
			return
		}
	}
}
