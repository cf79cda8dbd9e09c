package persist

import (
	stderrors "errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/streetlab/assist/pkg/errors"
)

// Badger is a durable KV store backed by BadgerDB.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a Badger store at dir.
func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil      // Badger's own logging is too chatty for a CLI
	opts.SyncWrites = true // exception lists are tiny, durability wins

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.WrapIO("open", dir, err)
	}
	return &Badger{db: db}, nil
}

// Get implements KV.
func (b *Badger) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapIO("get", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (b *Badger) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	return errors.WrapIO("set", key, err)
}

// Close implements KV.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Open returns a durable store at dir, or an in-memory store when the
// backend cannot be opened. Absence of durable storage degrades the
// exception list to session-only, it never blocks the engine.
func Open(dir string, logger *zerolog.Logger) KV {
	kv, err := NewBadger(dir)
	if err != nil {
		if logger != nil {
			logger.Warn().
				Err(err).
				Str("dir", dir).
				Msg("Persistent storage unavailable, exceptions will not survive this session")
		}
		return NewMemory()
	}
	return kv
}
