package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/core/query"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the file-level configuration of the query service.
type Config struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Log    LogConfig    `json:"log" yaml:"log"`
	Server ServerConfig `json:"server" yaml:"server"`
}

// EngineConfig tunes clause matching.
type EngineConfig struct {
	Workers           int    `json:"workers" yaml:"workers"`
	Shards            int    `json:"shards" yaml:"shards"`
	Strategy          string `json:"strategy" yaml:"strategy"`
	ParallelThreshold int    `json:"parallel_threshold" yaml:"parallel_threshold"`
	IndexThreshold    int    `json:"index_threshold" yaml:"index_threshold"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// ServerConfig holds the transport settings.
type ServerConfig struct {
	ListenAddr     string        `json:"listen_addr" yaml:"listen_addr"`
	MaxMessageSize int64         `json:"max_message_size" yaml:"max_message_size"`
	ReadTimeout    time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	opts := query.DefaultOptions()
	return Config{
		Engine: EngineConfig{
			Strategy:          opts.Strategy.String(),
			ParallelThreshold: opts.ParallelThreshold,
			IndexThreshold:    opts.IndexThreshold,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			ListenAddr:     "127.0.0.1:8080",
			MaxMessageSize: 1024 * 1024, // 1MB
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
		},
	}
}

// Load reads and validates a YAML file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML. Missing keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.Engine.Options(); err != nil {
		return err
	}
	if _, err := c.Log.ParsedLevel(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Options converts the engine section into matcher options.
func (c EngineConfig) Options() (query.Options, error) {
	strategy, err := query.ParseStrategy(c.Strategy)
	if err != nil {
		return query.Options{}, fmt.Errorf("%w: engine.strategy: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.Workers < 0:
		return query.Options{}, fmt.Errorf("%w: engine.workers must not be negative", ErrInvalidConfig)
	case c.Shards < 0:
		return query.Options{}, fmt.Errorf("%w: engine.shards must not be negative", ErrInvalidConfig)
	case c.ParallelThreshold < 0, c.IndexThreshold < 0:
		return query.Options{}, fmt.Errorf("%w: engine thresholds must not be negative", ErrInvalidConfig)
	}
	return query.Options{
		Workers:           c.Workers,
		Shards:            c.Shards,
		Strategy:          strategy,
		ParallelThreshold: c.ParallelThreshold,
		IndexThreshold:    c.IndexThreshold,
	}, nil
}

func (c LogConfig) ParsedLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return level, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

func (c ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: server.listen_addr is required", ErrInvalidConfig)
	}
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: server.max_message_size must be positive", ErrInvalidConfig)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}
