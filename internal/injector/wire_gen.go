//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

// Injectors for the stubs in injector.go, in the shape wire emits. Running
// go generate replaces this file with wire's own output.

package injector

import (
	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/query"
	"github.com/zeusync/ecsquery/internal/server"
)

// Injectors from injector.go:

func InitializeEngine(cfg config.Config) (*query.Engine, func(), error) {
	logger, cleanup, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine, err := ProvideEngine(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, func() {
		cleanup()
	}, nil
}

func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	logger, cleanup, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine, err := ProvideEngine(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	serverServer, err := ProvideServer(cfg, engine, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return serverServer, func() {
		cleanup()
	}, nil
}
