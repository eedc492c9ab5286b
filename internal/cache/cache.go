// Package cache provides a persistent key/value store for data fetched from
// remote services. Keys are tuples of strings, values are stored as JSON.
//
// The store is a BadgerDB directory. Entries are never expired or evicted,
// and only one process may have the directory open at a time.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("key not found in cache")

// KeySeparator joins key components into the storage key.
const KeySeparator = ":"

// Key identifies a cache entry. Components must not contain KeySeparator.
type Key []string

// String returns the storage form of the key
func (k Key) String() string {
	return strings.Join(k, KeySeparator)
}

// Store is the subset of cache operations used by the rest of the tool.
type Store interface {
	Contains(key Key) (bool, error)
	Get(key Key, v any) error
	Set(key Key, v any) error
}

// Cache is a Store backed by BadgerDB.
type Cache struct {
	db *badger.DB
}

// badgerLogger adapts zap to BadgerDB's Logger interface.
// Badger is chatty at info level, so info messages are demoted to debug.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Open opens (creating if needed) the cache stored in dir.
func Open(dir string, logger *zap.Logger) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	opts := badger.DefaultOptions(dir).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1)
	return open(opts, logger)
}

// OpenInMemory opens a cache that is discarded on Close. Used by tests.
func OpenInMemory() (*Cache, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), nil)
}

func open(opts badger.Options, logger *zap.Logger) (*Cache, error) {
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger.Named("cache").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close flushes and closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Contains reports whether a value is stored under key.
func (c *Cache) Contains(key Key) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key.String()))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", key, err)
	}
	return true, nil
}

// Get decodes the value stored under key into v.
// Returns ErrNotFound if the key is absent.
func (c *Cache) Get(key Key, v any) error {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key.String()))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return nil
}

// Set stores v under key, replacing any existing value.
func (c *Cache) Set(key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key.String()), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
