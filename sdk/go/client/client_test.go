package client

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/query"
	"github.com/zeusync/ecsquery/internal/server"
)

func startServer(t *testing.T) string {
	t.Helper()
	srv := server.NewServer(config.Default().Server, query.NewEngine(query.DefaultOptions(), nil), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestClientEvaluate(t *testing.T) {
	cfg := DefaultClientConfig()
	cfg.URL = startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, cfg)
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Evaluate(ctx, &server.WireRequest{
		Pairs:          [][]string{{"e1", "A"}, {"e2", "A"}, {"e2", "B"}},
		Clauses:        []server.WireClause{{With: []string{"A"}}},
		ReturnEntity:   true,
		SelectOptional: []string{"B"},
		Values:         []server.WireValue{{Entity: "e2", Component: "B", Value: json.RawMessage(`"hp"`)}},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, [][]any{{"e1", nil}, {"e2", "hp"}}, resp.Tuples)

	resp, err = c.Evaluate(ctx, &server.WireRequest{Pairs: [][]string{{"e1", "A"}}})
	require.ErrorIs(t, err, ErrRemote)
	require.NotNil(t, resp)
	require.Contains(t, resp.Error, query.ErrNoClauses.Error())

	require.NoError(t, c.Close())
	_, err = c.Evaluate(ctx, &server.WireRequest{})
	require.ErrorIs(t, err, ErrClientClosed)
}

func TestDialInvalidConfig(t *testing.T) {
	_, err := Dial(context.Background(), Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
