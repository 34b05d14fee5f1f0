// Package dataset owns the on-disk verb-form and generation datasets.
//
// Artifacts are resolved lazily: a file already present in the data
// directory wins, otherwise the member is extracted from the composite
// archive (downloading the archive first when allowed), otherwise the file
// is fetched directly from the base URL. Every artifact is decoded at most
// once per Store and cached for the Store's lifetime.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Artifact names, relative to the data directory and the archive root.
const (
	DefaultArchive = "composite_v002.tar.gz"
	DefaultBaseURL = "https://github.com/drdhaval2785/python-prakriya/raw/master/prakriya/data/"

	ShardDir       = "jsonsorted"
	ShardIndexFile = "shardindex.json"
	RuleTextFile   = "sutrainfo.json"
	FormTableFile  = "mapforms.json"
	AliasFile      = "rootaliases.json"
)

// Options configures a Store. Only Dir is required.
type Options struct {
	Dir            string
	BaseURL        string
	Archive        string
	AutoDownload   bool
	Fetcher        Fetcher
	PreloadWorkers int
	Logger         *slog.Logger
}

// Store lazily loads and caches dataset artifacts. It is safe for
// concurrent use; concurrent first loads of one artifact share a single read.
type Store struct {
	dir          string
	baseURL      string
	archive      string
	autoDownload bool
	fetcher      Fetcher
	workers      int
	log          *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]any
}

// New returns a Store over opts.Dir. No file is touched until first use.
func New(opts Options) (*Store, error) {
	if opts.Dir == "" {
		return nil, errors.New("dataset: data dir is required")
	}
	if opts.Archive == "" {
		opts.Archive = DefaultArchive
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Fetcher == nil && opts.AutoDownload {
		opts.Fetcher = NewHTTPFetcher(10*time.Minute, opts.Logger)
	}
	if opts.PreloadWorkers <= 0 {
		opts.PreloadWorkers = 4
	}
	return &Store{
		dir:          opts.Dir,
		baseURL:      opts.BaseURL,
		archive:      opts.Archive,
		autoDownload: opts.AutoDownload,
		fetcher:      opts.Fetcher,
		workers:      opts.PreloadWorkers,
		log:          opts.Logger.With("component", "dataset"),
		cache:        make(map[string]any),
	}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// cached returns the value stored under key, computing it with fn on first
// use. Failed loads are not cached.
func (s *Store) cached(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.RLock()
		v, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = v
		s.mu.Unlock()
		return v, nil
	})
	return v, err
}

func (s *Store) isCached(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[key]
	return ok
}

// ShardIndex maps a three-character SLP1 prefix to its shard id. It is read
// from shardindex.json when present and otherwise derived from the shard
// file names in the archive or the extracted shard directory.
func (s *Store) ShardIndex(ctx context.Context) (map[string]string, error) {
	v, err := s.cached(ctx, "index", func(ctx context.Context) (any, error) {
		var idx map[string]string
		err := s.readJSON(ctx, ShardIndexFile, &idx)
		if err == nil {
			s.log.Info("loaded shard index", "shards", len(idx))
			return idx, nil
		}
		if !errors.Is(err, ErrDatasetUnavailable) {
			return nil, err
		}
		idx, derr := s.deriveIndex(ctx)
		if derr != nil {
			return nil, derr
		}
		s.log.Info("derived shard index", "shards", len(idx))
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

func (s *Store) deriveIndex(ctx context.Context) (map[string]string, error) {
	var names []string
	if archivePath, err := s.ensureArchive(ctx); err == nil {
		names, err = listMembers(archivePath, ShardDir)
		if err != nil {
			return nil, err
		}
	} else {
		entries, derr := os.ReadDir(filepath.Join(s.dir, ShardDir))
		if derr != nil {
			return nil, &UnavailableError{Artifact: ShardIndexFile, Err: errors.Join(err, derr)}
		}
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	idx := make(map[string]string, len(names))
	for _, n := range names {
		base := path.Base(n)
		if !strings.HasSuffix(base, ".json") {
			continue
		}
		id := strings.TrimSuffix(base, ".json")
		idx[id] = id
	}
	return idx, nil
}

// Shard returns the decoded shard id. The returned map is shared; callers
// must not modify it.
func (s *Store) Shard(ctx context.Context, id string) (Shard, error) {
	key := "shard/" + id
	hit := s.isCached(key)
	v, err := s.cached(ctx, key, func(ctx context.Context) (any, error) {
		var sh Shard
		if err := s.readJSON(ctx, path.Join(ShardDir, id+".json"), &sh); err != nil {
			return nil, err
		}
		s.log.Info("loaded shard", "id", id, "forms", len(sh))
		return sh, nil
	})
	if err != nil {
		return nil, err
	}
	if hit {
		s.log.Debug("shard cache hit", "id", id)
	}
	return v.(Shard), nil
}

// ShardCached reports whether shard id has already been loaded.
func (s *Store) ShardCached(id string) bool {
	return s.isCached("shard/" + id)
}

// RuleTexts maps rule ids to rule text.
func (s *Store) RuleTexts(ctx context.Context) (map[string]string, error) {
	v, err := s.cached(ctx, "rules", func(ctx context.Context) (any, error) {
		var rules map[string]string
		if err := s.readJSON(ctx, RuleTextFile, &rules); err != nil {
			return nil, err
		}
		s.log.Info("loaded rule texts", "rules", len(rules))
		return rules, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

// FormTable returns the whole generation table.
func (s *Store) FormTable(ctx context.Context) (FormTable, error) {
	v, err := s.cached(ctx, "forms", func(ctx context.Context) (any, error) {
		var t FormTable
		if err := s.readJSON(ctx, FormTableFile, &t); err != nil {
			return nil, err
		}
		s.log.Info("loaded generation table", "roots", len(t))
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(FormTable), nil
}

// AliasMap returns the root alias table. A dataset without one yields an
// empty map.
func (s *Store) AliasMap(ctx context.Context) (AliasMap, error) {
	v, err := s.cached(ctx, "aliases", func(ctx context.Context) (any, error) {
		var m AliasMap
		err := s.readJSON(ctx, AliasFile, &m)
		switch {
		case errors.Is(err, ErrDatasetUnavailable):
			s.log.Info("no root alias table, exact roots only")
			return AliasMap{}, nil
		case err != nil:
			return nil, err
		}
		s.log.Info("loaded root aliases", "aliases", len(m))
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(AliasMap), nil
}

// LookupRoot returns the entries stored for root.
func (s *Store) LookupRoot(ctx context.Context, root string) (map[string]Entry, bool, error) {
	t, err := s.FormTable(ctx)
	if err != nil {
		return nil, false, err
	}
	entries, ok := t[root]
	return entries, ok, nil
}

// LookupAlias returns the stored roots an alternate spelling maps to.
func (s *Store) LookupAlias(ctx context.Context, alias string) ([]string, error) {
	m, err := s.AliasMap(ctx)
	if err != nil {
		return nil, err
	}
	return m[alias], nil
}

// Roots lists every root of the generation table in sorted order.
func (s *Store) Roots(ctx context.Context) ([]string, error) {
	t, err := s.FormTable(ctx)
	if err != nil {
		return nil, err
	}
	roots := make([]string, 0, len(t))
	for r := range t {
		roots = append(roots, r)
	}
	sort.Strings(roots)
	return roots, nil
}

func (s *Store) readJSON(ctx context.Context, name string, dst any) error {
	p, err := s.materialize(ctx, name)
	if err != nil {
		return err
	}
	f, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// materialize makes sure name exists under the data dir and returns its path.
func (s *Store) materialize(ctx context.Context, name string) (string, error) {
	local, err := safeJoin(s.dir, name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(local); err == nil {
		return local, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	var causes []error
	archivePath, err := s.ensureArchive(ctx)
	if err == nil {
		err = extractMember(archivePath, name, s.dir)
		if err == nil {
			s.log.Debug("extracted archive member", "member", name)
			return local, nil
		}
		if !isMissing(err) {
			return "", err
		}
	}
	causes = append(causes, err)

	if s.autoDownload && s.baseURL != "" {
		url := strings.TrimSuffix(s.baseURL, "/") + "/" + name
		s.log.Info("downloading artifact", "url", url)
		err := s.fetcher.Fetch(ctx, url, local)
		if err == nil {
			return local, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		causes = append(causes, err)
	}
	return "", &UnavailableError{Artifact: name, Err: errors.Join(causes...)}
}

// ensureArchive returns the local archive path, downloading it when it is
// missing and downloads are enabled.
func (s *Store) ensureArchive(ctx context.Context) (string, error) {
	p := filepath.Join(s.dir, s.archive)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if !s.autoDownload || s.baseURL == "" {
		return "", &UnavailableError{Artifact: s.archive, Err: os.ErrNotExist}
	}
	_, err, _ := s.group.Do("archive", func() (any, error) {
		if _, err := os.Stat(p); err == nil {
			return nil, nil
		}
		url := strings.TrimSuffix(s.baseURL, "/") + "/" + s.archive
		s.log.Info("downloading dataset archive, this can take a few minutes", "url", url)
		return nil, s.fetcher.Fetch(ctx, url, p)
	})
	if err != nil {
		return "", &UnavailableError{Artifact: s.archive, Err: err}
	}
	return p, nil
}

// Decompress extracts every archive member into the data directory so later
// lookups never touch the archive.
func (s *Store) Decompress(ctx context.Context) (int, error) {
	archivePath, err := s.ensureArchive(ctx)
	if err != nil {
		return 0, err
	}
	n, err := extractAll(archivePath, s.dir)
	if err != nil {
		return n, err
	}
	s.log.Info("archive extracted", "files", n, "dir", s.dir)
	return n, nil
}
