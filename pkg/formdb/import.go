package formdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
)

// Source is the generation table to import. *dataset.Store implements it.
type Source interface {
	FormTable(ctx context.Context) (dataset.FormTable, error)
	AliasMap(ctx context.Context) (dataset.AliasMap, error)
}

// ImportOptions tunes Import. Zero values pick defaults.
type ImportOptions struct {
	BatchSize int
	Logger    *slog.Logger
}

// ImportStats counts imported rows.
type ImportStats struct {
	Roots   int `json:"roots"`
	Entries int `json:"entries"`
	Forms   int `json:"forms"`
	Aliases int `json:"aliases"`
}

// Import copies the generation table and alias map of src into db,
// replacing rows for every root and alias it carries. Roots are written one
// per WriteFunc so a batch never splits an entry.
func Import(ctx context.Context, db *sql.DB, src Source, opts ImportOptions) (ImportStats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	table, err := src.FormTable(ctx)
	if err != nil {
		return ImportStats{}, err
	}
	aliases, err := src.AliasMap(ctx)
	if err != nil {
		return ImportStats{}, err
	}

	// tallies[i] is filled by the i-th write inside its transaction; only the
	// first Committed() of them reached the database
	var tallies []*ImportStats
	bw := NewBatchWriter(db, opts.BatchSize, 0)
	bw.OnError = func(err error) { log.Error("form import batch failed", "err", err) }

	submit := func(w func(ctx context.Context, tx *sql.Tx, t *ImportStats) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := new(ImportStats)
		tallies = append(tallies, t)
		return bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			*t = ImportStats{}
			return w(ctx, tx, t)
		})
	}

	var submitErr error
	for _, root := range sortedKeys(table) {
		entries := table[root]
		submitErr = submit(func(ctx context.Context, tx *sql.Tx, t *ImportStats) error {
			for _, num := range sortedKeys(entries) {
				n, err := insertEntry(ctx, tx, root, num, entries[num])
				if err != nil {
					return err
				}
				t.Entries++
				t.Forms += n
			}
			t.Roots = 1
			return nil
		})
		if submitErr != nil {
			break
		}
	}
	if submitErr == nil {
		for _, alias := range sortedKeys(aliases) {
			roots := aliases[alias]
			if submitErr = submit(func(ctx context.Context, tx *sql.Tx, t *ImportStats) error {
				if err := insertAlias(ctx, tx, alias, roots); err != nil {
					return err
				}
				t.Aliases = 1
				return nil
			}); submitErr != nil {
				break
			}
		}
	}

	closeErr := bw.Close()
	var stats ImportStats
	for _, t := range tallies[:min(bw.Committed(), len(tallies))] {
		stats.Roots += t.Roots
		stats.Entries += t.Entries
		stats.Forms += t.Forms
		stats.Aliases += t.Aliases
	}
	if closeErr != nil {
		return stats, fmt.Errorf("import forms: %w", closeErr)
	}
	if submitErr != nil {
		return stats, fmt.Errorf("import forms: %w", submitErr)
	}
	log.Info("imported generation table",
		"roots", stats.Roots, "entries", stats.Entries, "forms", stats.Forms, "aliases", stats.Aliases)
	return stats, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
