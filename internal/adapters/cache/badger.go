package cache

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

type badgerCache struct {
	db *badger.DB
}

func newBadgerCache(path string) (*badgerCache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerCache{db: db}, nil
}

func (c *badgerCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (c *badgerCache) Set(ctx context.Context, key, value string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (c *badgerCache) Delete(ctx context.Context, key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (c *badgerCache) Close() error {
	return c.db.Close()
}
