package query

import (
	"context"
	"time"

	"github.com/zeusync/ecsquery/internal/core/models"
	"github.com/zeusync/ecsquery/internal/core/observability/log"
)

// Request is one fully parsed query together with the store snapshot it
// runs against.
type Request struct {
	Pairs          []models.Pair
	ForEntities    []models.EntityID
	NotForEntities []models.EntityID
	Clauses        []models.Clause
	Selection      models.Selection
	Values         models.ValueTable
}

// Stats describes one evaluation.
type Stats struct {
	Pairs    int
	Indexed  int
	Scoped   int
	Matched  int
	Emitted  int
	Strategy Strategy

	IndexTime time.Duration
	MatchTime time.Duration
	BuildTime time.Duration
	Total     time.Duration
}

type Result struct {
	// Entities is the matched set in matcher order, before mandatory drops.
	Entities []models.EntityID
	Tuples   []models.Tuple
	Stats    Stats
}

// Engine runs the full pipeline: index, scope, match, materialize.
type Engine struct {
	matcher *Matcher
	logger  log.Log
}

func NewEngine(opts Options, logger log.Log) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Engine{
		matcher: NewMatcher(opts),
		logger:  logger.With(log.String("component", "query_engine")),
	}
}

// Match runs only the clause matcher.
func (e *Engine) Match(ctx context.Context, m models.Membership, clauses []models.Clause) ([]models.EntityID, error) {
	return e.matcher.Match(ctx, m, clauses)
}

// Evaluate runs every stage over req. Tuples are built with DefaultEncoder.
func (e *Engine) Evaluate(ctx context.Context, req Request) (*Result, error) {
	return e.EvaluateWith(ctx, DefaultEncoder{}, req)
}

// EvaluateWith runs every stage over req, materializing through enc.
func (e *Engine) EvaluateWith(ctx context.Context, enc Encoder, req Request) (*Result, error) {
	start := time.Now()
	stats := Stats{Pairs: len(req.Pairs)}

	membership, err := BuildMembershipIndex(req.Pairs)
	if err != nil {
		return nil, e.fail(err)
	}
	stats.Indexed = len(membership)

	if membership, err = RestrictToEntities(membership, req.ForEntities); err != nil {
		return nil, e.fail(err)
	}
	if membership, err = ExcludeEntities(membership, req.NotForEntities); err != nil {
		return nil, e.fail(err)
	}
	stats.Scoped = len(membership)
	stats.IndexTime = time.Since(start)

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	matchStart := time.Now()
	stats.Strategy = e.matcher.Resolve(len(membership))
	ids, err := e.matcher.Match(ctx, membership, req.Clauses)
	if err != nil {
		return nil, e.fail(err)
	}
	stats.Matched = len(ids)
	stats.MatchTime = time.Since(matchStart)

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	tuples, err := BuildResultTuplesWith(enc, req.Selection, ids, req.Values)
	if err != nil {
		return nil, e.fail(err)
	}
	stats.Emitted = len(tuples)
	stats.BuildTime = time.Since(buildStart)
	stats.Total = time.Since(start)

	if e.logger.Enabled(log.LevelDebug) {
		e.logger.Debug("query evaluated",
			log.Int("pairs", stats.Pairs),
			log.Int("entities", stats.Indexed),
			log.Int("scoped", stats.Scoped),
			log.Int("matched", stats.Matched),
			log.Int("emitted", stats.Emitted),
			log.Int("clauses", len(req.Clauses)),
			log.String("strategy", stats.Strategy.String()),
			log.Duration("elapsed", stats.Total))
	}

	return &Result{Entities: ids, Tuples: tuples, Stats: stats}, nil
}

func (e *Engine) fail(err error) error {
	e.logger.Debug("query rejected", log.Error(err))
	return err
}
