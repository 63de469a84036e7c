package query

import (
	"fmt"
	"strings"
)

// Strategy selects how clauses are evaluated against a membership mapping.
type Strategy uint8

const (
	// StrategyAuto picks StrategyIndexed for large inputs and StrategyScan otherwise.
	StrategyAuto Strategy = iota
	// StrategyScan tests every entity's tag set, sharded by entity.
	StrategyScan
	// StrategyIndexed intersects per-tag entity sets, one clause per task.
	StrategyIndexed
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyScan:
		return "scan"
	case StrategyIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "scan":
		return StrategyScan, nil
	case "indexed", "index":
		return StrategyIndexed, nil
	default:
		return StrategyAuto, fmt.Errorf("unknown match strategy %q", s)
	}
}

// Options tunes the matcher. Zero values fall back to DefaultOptions.
type Options struct {
	// Workers bounds the goroutines used by one evaluation. Zero means GOMAXPROCS.
	Workers int
	// Shards is the number of entity partitions used by the scan strategy.
	// Zero means four per worker.
	Shards int
	// Strategy selects the clause matching algorithm.
	Strategy Strategy
	// ParallelThreshold is the entity count below which work stays on the
	// calling goroutine.
	ParallelThreshold int
	// IndexThreshold is the entity count from which StrategyAuto builds an
	// inverted index.
	IndexThreshold int
}

func DefaultOptions() Options {
	return Options{
		Strategy:          StrategyAuto,
		ParallelThreshold: 1024,
		IndexThreshold:    4096,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = def.ParallelThreshold
	}
	if o.IndexThreshold <= 0 {
		o.IndexThreshold = def.IndexThreshold
	}
	return o
}
