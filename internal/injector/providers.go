package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/core/query"
	"github.com/zeusync/ecsquery/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEngine,
	ProvideServer,
)

// ProvideLogger builds the process logger. The cleanup flushes buffered
// entries.
func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := cfg.Log.ParsedLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(level)
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideEngine(cfg config.Config, logger *log.Logger) (*query.Engine, error) {
	opts, err := cfg.Engine.Options()
	if err != nil {
		return nil, err
	}
	return query.NewEngine(opts, logger), nil
}

func ProvideServer(cfg config.Config, engine *query.Engine, logger *log.Logger) (*server.Server, error) {
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	return server.NewServer(cfg.Server, engine, logger), nil
}
