package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/katalvlaran/remoteness/metrics"
	"github.com/katalvlaran/remoteness/raster"
)

// Artefact kinds.
const (
	KindCost  = "cost"
	KindField = "field"
)

// Options configures Open.
type Options struct {
	Dir      string // database directory, ignored when InMemory
	InMemory bool
	Logger   *zap.Logger
}

// Store is a content-addressed raster cache. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *zap.Logger
}

// Open opens or creates the cache described by opts.
func Open(opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("cache: directory required unless in memory")
	}
	bopts := badger.DefaultOptions(opts.Dir).
		WithInMemory(opts.InMemory).
		WithLogger(badgerLogger{opts.Logger.Sugar()})
	if opts.InMemory {
		bopts = bopts.WithDir("").WithValueDir("")
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}
	return &Store{db: db, enc: enc, dec: dec, log: opts.Logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

// Handle is an immutable reference to a cached raster.
type Handle struct {
	key    Key
	raster *raster.Float
}

// NewHandle wraps a raster computed outside the store.
func NewHandle(key Key, r *raster.Float) *Handle {
	return &Handle{key: key, raster: r}
}

// Key returns the content key.
func (h *Handle) Key() Key { return h.key }

// Raster returns the cached raster.
func (h *Handle) Raster() *raster.Float { return h.raster }

// Get looks key up. ok is false on a miss.
func (s *Store) Get(kind string, key Key) (h *Handle, ok bool, err error) {
	var blob []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.CacheRequests.WithLabelValues(kind, "miss").Inc()
		return nil, false, nil
	case err != nil:
		metrics.CacheRequests.WithLabelValues(kind, "error").Inc()
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		metrics.CacheRequests.WithLabelValues(kind, "error").Inc()
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	r, err := decodeFloat(raw)
	if err != nil {
		metrics.CacheRequests.WithLabelValues(kind, "error").Inc()
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}
	metrics.CacheRequests.WithLabelValues(kind, "hit").Inc()
	s.log.Debug("cache hit", zap.String("key", string(key)), zap.Int("bytes", len(blob)))

	return &Handle{key: key, raster: r}, true, nil
}

// Put stores r under key and returns its handle.
func (s *Store) Put(key Key, r *raster.Float) (*Handle, error) {
	blob := s.enc.EncodeAll(encodeFloat(r), nil)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
	if err != nil {
		return nil, fmt.Errorf("cache: put %s: %w", key, err)
	}
	s.log.Debug("cache put", zap.String("key", string(key)), zap.Int("bytes", len(blob)))

	return &Handle{key: key, raster: r}, nil
}

// GetOrCompute returns the cached raster for key or computes, stores and
// returns it. hit reports whether the store already had it.
func (s *Store) GetOrCompute(ctx context.Context, kind string, key Key,
	compute func(context.Context) (*raster.Float, error)) (h *Handle, hit bool, err error) {
	if h, ok, err := s.Get(kind, key); err != nil || ok {
		return h, ok, err
	}
	r, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	h, err = s.Put(key, r)
	return h, false, err
}

// badgerLogger routes badger messages to zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
