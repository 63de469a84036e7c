//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/query"
	"github.com/zeusync/ecsquery/internal/server"
)

func InitializeEngine(cfg config.Config) (*query.Engine, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}

func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
