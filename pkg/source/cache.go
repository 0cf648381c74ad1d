package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/types"
)

const (
	batchKey    = "studies/all"
	studyPrefix = "study/"
)

// CachedSource caches batch and per-id study lookups in BadgerDB with
// a TTL. Search is not cached; query strings have too little reuse to
// be worth the key space.
type CachedSource struct {
	source Source
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// NewCachedSource opens the cache database and wraps src with it.
func NewCachedSource(src Source, cfg config.CacheConfig, logger *slog.Logger) (*CachedSource, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0755); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.TTL) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &CachedSource{
		source: src,
		db:     db,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Studies implements Source.
func (c *CachedSource) Studies(ctx context.Context) ([]types.Study, error) {
	var studies []types.Study
	if ok := c.get(batchKey, &studies); ok {
		return studies, nil
	}

	studies, err := c.source.Studies(ctx)
	if err != nil {
		return nil, err
	}
	c.put(batchKey, studies)
	// Seed per-id entries so subsequent lookups skip the network.
	for _, s := range studies {
		c.put(studyPrefix+s.ID, s)
	}
	return studies, nil
}

// Study implements Source.
func (c *CachedSource) Study(ctx context.Context, id string) (types.Study, error) {
	var study types.Study
	if ok := c.get(studyPrefix+id, &study); ok {
		return study, nil
	}

	study, err := c.source.Study(ctx, id)
	if err != nil {
		return types.Study{}, err
	}
	c.put(studyPrefix+id, study)
	return study, nil
}

// Search implements Source.
func (c *CachedSource) Search(ctx context.Context, query string, limit int) ([]types.Study, error) {
	return c.source.Search(ctx, query, limit)
}

// Close implements Source.
func (c *CachedSource) Close() error {
	err := c.db.Close()
	if serr := c.source.Close(); serr != nil && err == nil {
		err = serr
	}
	return err
}

// get loads and decodes a cache entry, reporting whether it was found.
// Decode failures count as misses; the entry will be overwritten.
func (c *CachedSource) get(key string, out any) bool {
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			c.logger.Debug("cache read failed", "key", key, "error", err)
		}
		return false
	}
	return true
}

// put stores a cache entry with the configured TTL. Write failures are
// logged and swallowed; the cache never fails a request.
func (c *CachedSource) put(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	err = c.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data).WithTTL(c.ttl)
		return tx.SetEntry(entry)
	})
	if err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
