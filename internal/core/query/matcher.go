package query

import (
	"context"

	"github.com/zeusync/ecsquery/internal/core/models"
	"github.com/zeusync/ecsquery/pkg/concurrent"
	"github.com/zeusync/ecsquery/pkg/sequence"
)

// Matcher evaluates OR-combined clauses against a membership mapping. It
// holds no per-call state and is safe for concurrent use.
type Matcher struct {
	opts    Options
	workers int
}

func NewMatcher(opts Options) *Matcher {
	opts = opts.withDefaults()
	return &Matcher{
		opts:    opts,
		workers: concurrent.Workers(opts.Workers),
	}
}

// MatchByComponentSets evaluates clauses with default options.
func MatchByComponentSets(m models.Membership, clauses []models.Clause) ([]models.EntityID, error) {
	return NewMatcher(DefaultOptions()).Match(context.Background(), m, clauses)
}

// Match returns every entity satisfying at least one clause, each once, in
// unspecified order.
func (m *Matcher) Match(ctx context.Context, membership models.Membership, clauses []models.Clause) ([]models.EntityID, error) {
	if err := validateClauses(clauses); err != nil {
		return nil, err
	}
	if len(membership) == 0 {
		return []models.EntityID{}, nil
	}

	switch m.Resolve(len(membership)) {
	case StrategyIndexed:
		return m.matchIndexed(ctx, membership, clauses)
	default:
		return m.matchScan(ctx, membership, clauses)
	}
}

// Resolve reports the strategy used for a mapping with n entities.
func (m *Matcher) Resolve(n int) Strategy {
	if m.opts.Strategy != StrategyAuto {
		return m.opts.Strategy
	}
	if n >= m.opts.IndexThreshold {
		return StrategyIndexed
	}
	return StrategyScan
}

func (m *Matcher) parallel(n int) int {
	if n < m.opts.ParallelThreshold {
		return 1
	}
	return m.workers
}

func (m *Matcher) matchIndexed(ctx context.Context, membership models.Membership, clauses []models.Clause) ([]models.EntityID, error) {
	index := BuildInvertedIndex(membership)
	workers := m.parallel(len(membership))
	if len(clauses) == 1 {
		workers = 1
	}
	slots, err := concurrent.ParallelMap(ctx, clauses, workers, index.Evaluate)
	if err != nil {
		return nil, err
	}
	return mergeUnique(slots), nil
}

func validateClauses(clauses []models.Clause) error {
	if len(clauses) == 0 {
		return inputError("match", -1, ErrNoClauses)
	}
	for i, c := range clauses {
		for _, tag := range c.Tags() {
			if !tag.Valid() {
				return inputError("match", i, ErrInvalidTag)
			}
		}
	}
	return nil
}

// mergeUnique unions partial results. Union is order independent; first
// occurrences win.
func mergeUnique(slots [][]models.EntityID) []models.EntityID {
	out := sequence.Unique(sequence.Concat(slots...)).Collect()
	if out == nil {
		return []models.EntityID{}
	}
	return out
}
