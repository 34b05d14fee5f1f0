package prakriya

import (
	"context"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
)

// ShardPrefixLen is the number of leading SLP1 characters that pick a shard.
const ShardPrefixLen = 3

// FactSource serves the sharded verb-form dataset. *dataset.Store
// implements it.
type FactSource interface {
	ShardIndex(ctx context.Context) (map[string]string, error)
	Shard(ctx context.Context, id string) (dataset.Shard, error)
	RuleTexts(ctx context.Context) (map[string]string, error)
}

// Resolver finds the stored interpretations of an SLP1 verb form.
type Resolver struct {
	facts FactSource
}

func NewResolver(facts FactSource) *Resolver {
	return &Resolver{facts: facts}
}

// ShardKey returns the shard prefix of an SLP1 form.
func ShardKey(form string) string {
	n := 0
	for i := range form {
		if n == ShardPrefixLen {
			return form[:i]
		}
		n++
	}
	return form
}

// Resolve returns one record per candidate root, in stored order. The form
// must match a stored key exactly.
func (r *Resolver) Resolve(ctx context.Context, form string) ([]Record, error) {
	idx, err := r.facts.ShardIndex(ctx)
	if err != nil {
		return nil, err
	}
	id, ok := idx[ShardKey(form)]
	if !ok {
		return nil, queryErr(ErrUnknownForm, form)
	}
	shard, err := r.facts.Shard(ctx, id)
	if err != nil {
		return nil, err
	}
	raws, ok := shard[form]
	if !ok || len(raws) == 0 {
		return nil, queryErr(ErrUnknownForm, form)
	}
	rules, err := r.facts.RuleTexts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = newRecord(raw, rules)
	}
	return out, nil
}
