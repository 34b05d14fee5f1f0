package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/drdhaval2785/prakriya/internal/config"
	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/formdb"
	"github.com/drdhaval2785/prakriya/pkg/prakriya"
)

// Session bundles the stores opened from a configuration.
type Session struct {
	Store    *dataset.Store
	Prakriya *prakriya.Prakriya

	closers []io.Closer
}

// NewStore builds the dataset store described by cfg.
func NewStore(cfg *config.Config, logger *slog.Logger) (*dataset.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := dataset.Options{
		Dir:            cfg.Data.Dir,
		BaseURL:        cfg.Data.BaseURL,
		Archive:        cfg.Data.Archive,
		AutoDownload:   !cfg.Data.Offline,
		PreloadWorkers: cfg.Data.PreloadWorkers,
		Logger:         logger,
	}
	if !cfg.Data.Offline {
		opts.Fetcher = dataset.NewHTTPFetcher(cfg.Data.HTTPTimeout, logger)
	}
	return dataset.New(opts)
}

// Open wires a query session: facts always come from the dataset store,
// generated forms from the configured backend. Scheme preferences are
// applied from cfg. A nil logger means slog.Default().
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store, err := NewStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	s := &Session{Store: store}

	var forms prakriya.FormSource = store
	if cfg.Forms.Backend == config.BackendSQLite {
		fdb, err := formdb.Open(ctx, cfg.Forms.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open forms db: %w", err)
		}
		s.closers = append(s.closers, fdb)
		forms = fdb
		logger.Debug("serving generated forms from sqlite", "path", cfg.Forms.SQLitePath)
	}

	p := prakriya.New(store, forms, prakriya.WithLogger(logger))
	if err := p.SetInputScheme(cfg.Translit.Input); err != nil {
		s.Close()
		return nil, err
	}
	if err := p.SetOutputScheme(cfg.Translit.Output); err != nil {
		s.Close()
		return nil, err
	}
	s.Prakriya = p
	return s, nil
}

// Close releases any database handles.
func (s *Session) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
