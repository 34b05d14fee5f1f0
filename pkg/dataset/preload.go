package dataset

import (
	"context"
	"fmt"
	"sort"
)

// Preload loads the given shards into the cache using a bounded worker pool.
// With no ids every shard in the index is loaded. It returns the number of
// shards requested and the first load error.
func (s *Store) Preload(ctx context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		idx, err := s.ShardIndex(ctx)
		if err != nil {
			return 0, err
		}
		seen := make(map[string]bool, len(idx))
		for _, id := range idx {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
	}

	pool := NewWorkerPool(s.workers, s.workers*2)
	pool.Start(ctx)
	var submitErr error
	for _, id := range ids {
		submitErr = pool.Submit(ctx, func(ctx context.Context) error {
			if _, err := s.Shard(ctx, id); err != nil {
				return fmt.Errorf("preload %s: %w", id, err)
			}
			return nil
		})
		if submitErr != nil {
			break
		}
	}
	if err := pool.Close(); err != nil {
		return len(ids), err
	}
	if submitErr != nil {
		return len(ids), submitErr
	}
	s.log.Info("preloaded shards", "count", len(ids))
	return len(ids), nil
}
