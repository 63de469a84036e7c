// Package client provides a websocket client for the ecsquery service.
package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/server"
)

// Client is a single websocket session. Evaluate calls are serialized.
type Client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed int32 // atomic bool

	config Config
	logger log.Log
}

// Config holds configuration for the client
type Config struct {
	// URL of the websocket endpoint, e.g. ws://127.0.0.1:8080/ws
	URL              string
	HandshakeTimeout time.Duration
	MaxMessageSize   int64

	Logger log.Log
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() Config {
	return Config{
		URL:              "ws://127.0.0.1:8080/ws",
		HandshakeTimeout: 10 * time.Second,
		MaxMessageSize:   16 * 1024 * 1024, // 16MB
	}
}

// Dial connects to the server.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if _, err := url.Parse(cfg.URL); err != nil || cfg.URL == "" {
		return nil, fmt.Errorf("%w: bad url %q", ErrInvalidConfig, cfg.URL)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}
	if cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}

	c := &Client{
		conn:   conn,
		config: cfg,
		logger: cfg.Logger.With(log.String("component", "client"), log.String("url", cfg.URL)),
	}
	c.logger.Debug("Connected")
	return c, nil
}

// Evaluate sends one query and waits for its response. A response carrying
// an error is returned together with an error wrapping ErrRemote.
func (c *Client) Evaluate(ctx context.Context, req *server.WireRequest) (*server.WireResponse, error) {
	if atomic.LoadInt32(&c.closed) == 1 {
		return nil, ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deadline, _ := ctx.Deadline()
	_ = c.conn.SetWriteDeadline(deadline)
	_ = c.conn.SetReadDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		// Unblocks the pending read; the session is unusable afterwards.
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := c.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send query: %w", err)
	}

	var resp server.WireResponse
	if err := c.conn.ReadJSON(&resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.Error != "" {
		return &resp, fmt.Errorf("%w: %s", ErrRemote, resp.Error)
	}
	return &resp, nil
}

// Close ends the session.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.logger.Debug("Disconnected")
	return c.conn.Close()
}
