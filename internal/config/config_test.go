package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/core/query"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Engine.Options()
	require.NoError(t, err)
	require.Equal(t, query.DefaultOptions(), opts)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
engine:
  workers: 8
  strategy: indexed
log:
  level: debug
server:
  listen_addr: 0.0.0.0:9000
  read_timeout: 2s
`))
	require.NoError(t, err)

	require.Equal(t, 8, cfg.Engine.Workers)
	require.Equal(t, 1024, cfg.Engine.ParallelThreshold, "missing keys keep defaults")

	opts, err := cfg.Engine.Options()
	require.NoError(t, err)
	require.Equal(t, query.StrategyIndexed, opts.Strategy)

	level, err := cfg.Log.ParsedLevel()
	require.NoError(t, err)
	require.Equal(t, log.LevelDebug, level)

	require.Equal(t, "0.0.0.0:9000", cfg.Server.ListenAddr)
	require.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
}

func TestParseInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"strategy":  "engine: {strategy: bitmap}",
		"workers":   "engine: {workers: -1}",
		"level":     "log: {level: loud}",
		"addr":      "server: {listen_addr: ''}",
		"size":      "server: {max_message_size: 0}",
		"malformed": "engine: [",
	} {
		_, err := Parse([]byte(doc))
		require.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecsquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  shards: 12\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Engine.Shards)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
