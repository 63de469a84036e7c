package query

import (
	"context"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/ecsquery/internal/core/models"
	"github.com/zeusync/ecsquery/pkg/concurrent"
)

type entityRow struct {
	id   models.EntityID
	tags []models.ComponentTag
}

func shardKey(row entityRow) uint64 {
	return xxhash.Sum64String(string(row.id))
}

// matchScan partitions entities into shards and tests every clause against
// each entity of a shard. Shards are disjoint, so an entity is emitted by at
// most one task and the merge only has to concatenate.
func (m *Matcher) matchScan(ctx context.Context, membership models.Membership, clauses []models.Clause) ([]models.EntityID, error) {
	rows := make([]entityRow, 0, len(membership))
	for id, tags := range membership {
		rows = append(rows, entityRow{id: id, tags: tags})
	}

	workers := m.parallel(len(rows))
	shards := 1
	if workers > 1 {
		shards = m.opts.Shards
		if shards <= 0 {
			shards = workers * 4
		}
	}

	parts := concurrent.Partition(rows, shards, shardKey)
	slots := make([][]models.EntityID, len(parts))
	err := concurrent.ForEach(ctx, parts, workers, func(_ context.Context, idx int, part []entityRow) error {
		slots[idx] = scanShard(part, clauses)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergeUnique(slots), nil
}

func scanShard(rows []entityRow, clauses []models.Clause) []models.EntityID {
	var out []models.EntityID
	set := make(models.TagSet)
	for _, row := range rows {
		clear(set)
		for _, t := range row.tags {
			set[t] = struct{}{}
		}
		for _, c := range clauses {
			if c.Matches(set) {
				out = append(out, row.id)
				break
			}
		}
	}
	return out
}
