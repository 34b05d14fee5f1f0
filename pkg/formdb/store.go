package formdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/drdhaval2785/prakriya/pkg/dataset"
)

// Store serves the generation table out of SQLite.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens and migrates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

func (s *Store) DB() *sql.DB  { return s.db }
func (s *Store) Close() error { return s.db.Close() }

// LookupRoot returns the entries of root keyed by entry number. The second
// result is false when the root is not in the table.
func (s *Store) LookupRoot(ctx context.Context, root string) (map[string]dataset.Entry, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, gana, meaning, verb_without_anubandha, padi, it FROM entries WHERE root = ?`, root)
	if err != nil {
		return nil, false, fmt.Errorf("query entries: %w", err)
	}
	entries := make(map[string]dataset.Entry)
	for rows.Next() {
		var (
			num  string
			info dataset.EntryInfo
		)
		if err := rows.Scan(&num, &info.Gana, &info.Meaning, &info.VerbWithoutAnubandha, &info.PadI, &info.It); err != nil {
			rows.Close()
			return nil, false, err
		}
		entries[num] = dataset.Entry{Info: info, Tenses: make(map[string]map[string][]string)}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT number, tense, suffix, form FROM forms WHERE root = ? ORDER BY number, tense, suffix, position`, root)
	if err != nil {
		return nil, false, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var num, tense, suffix, form string
		if err := rows.Scan(&num, &tense, &suffix, &form); err != nil {
			return nil, false, err
		}
		e, ok := entries[num]
		if !ok {
			continue
		}
		bySuffix := e.Tenses[tense]
		if bySuffix == nil {
			bySuffix = make(map[string][]string)
			e.Tenses[tense] = bySuffix
		}
		bySuffix[suffix] = append(bySuffix[suffix], form)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// LookupAlias returns the roots an alias stands for, in stored order.
func (s *Store) LookupAlias(ctx context.Context, alias string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT root FROM root_aliases WHERE alias = ? ORDER BY position`, alias)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, err
		}
		out = append(out, root)
	}
	return out, rows.Err()
}

// Roots lists every root in the table, sorted.
func (s *Store) Roots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT root FROM entries ORDER BY root`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, err
		}
		out = append(out, root)
	}
	return out, rows.Err()
}

// FormRef locates one generated form in the table.
type FormRef struct {
	Root   string `json:"root"`
	Number string `json:"number"`
	Tense  string `json:"lakara"`
	Suffix string `json:"suffix"`
}

// FindForm returns every cell of the table that holds form, which makes the
// table usable for reverse lookups without the sharded derivation data.
func (s *Store) FindForm(ctx context.Context, form string) ([]FormRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT root, number, tense, suffix FROM forms WHERE form = ? ORDER BY number, tense, suffix`, form)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()
	var out []FormRef
	for rows.Next() {
		var r FormRef
		if err := rows.Scan(&r.Root, &r.Number, &r.Tense, &r.Suffix); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func insertEntry(ctx context.Context, db DBExecutor, root, num string, e dataset.Entry) (int, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO entries (root, number, gana, meaning, verb_without_anubandha, padi, it) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(root, number) DO UPDATE SET
		   gana = excluded.gana, meaning = excluded.meaning,
		   verb_without_anubandha = excluded.verb_without_anubandha,
		   padi = excluded.padi, it = excluded.it`,
		root, num, e.Info.Gana, e.Info.Meaning, e.Info.VerbWithoutAnubandha, e.Info.PadI, e.Info.It)
	if err != nil {
		return 0, fmt.Errorf("insert entry %s %s: %w", root, num, err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM forms WHERE root = ? AND number = ?`, root, num); err != nil {
		return 0, err
	}
	n := 0
	for tense, bySuffix := range e.Tenses {
		for suffix, forms := range bySuffix {
			for i, f := range forms {
				if _, err := db.ExecContext(ctx,
					`INSERT INTO forms (root, number, tense, suffix, position, form) VALUES (?, ?, ?, ?, ?, ?)`,
					root, num, tense, suffix, i, f); err != nil {
					return n, fmt.Errorf("insert form %s/%s/%s: %w", root, tense, suffix, err)
				}
				n++
			}
		}
	}
	return n, nil
}

func insertAlias(ctx context.Context, db DBExecutor, alias string, roots []string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM root_aliases WHERE alias = ?`, alias); err != nil {
		return err
	}
	for i, r := range roots {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO root_aliases (alias, position, root) VALUES (?, ?, ?)`, alias, i, r); err != nil {
			return fmt.Errorf("insert alias %s: %w", alias, err)
		}
	}
	return nil
}
