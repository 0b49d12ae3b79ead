package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/model"
)

// Key layout:
//
//	entry/<name>          -> EntryRecord JSON
//	rev/<name>/<seq 12d>  -> Revision JSON
//	cmt/<name>/<n 12d>    -> Comment JSON
//	cmtseq/<name>         -> big-endian uint64 counter
//
// Zero-padded sequence components keep badger's lexicographic iteration
// order equal to log order.

// BadgerConfig configures a badger-backed store.
type BadgerConfig struct {
	// Root is the data root; the database lives under <root>/.revlog/badger.
	Root string
	// InMemory disables disk persistence, for tests.
	InMemory bool
}

// BadgerStore persists entries in a BadgerDB key-value database. Entry
// creation and the first revision are committed in one transaction.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the database.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Join(cfg.Root, ".revlog", "badger"))
		opts = opts.WithSyncWrites(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func entryKey(name string) []byte  { return []byte("entry/" + name) }
func cmtSeqKey(name string) []byte { return []byte("cmtseq/" + name) }
func revPrefix(name string) []byte { return []byte("rev/" + name + "/") }
func cmtPrefix(name string) []byte { return []byte("cmt/" + name + "/") }

func revKey(name string, seq int64) []byte {
	return []byte(fmt.Sprintf("rev/%s/%012d", name, seq))
}

func cmtKey(name string, n uint64) []byte {
	return []byte(fmt.Sprintf("cmt/%s/%012d", name, n))
}

func (s *BadgerStore) CreateEntry(rec *model.EntryRecord, first *model.Revision) error {
	return s.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(entryKey(rec.Name)); err == nil {
			return errclass.ErrAlreadyExists.WithMessagef("entry %s already exists", rec.Name)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check entry key: %w", err)
		}

		if err := setJSON(txn, entryKey(rec.Name), rec); err != nil {
			return err
		}
		return setJSON(txn, revKey(rec.Name, first.Sequence), first)
	})
}

func (s *BadgerStore) GetEntry(name string) (*model.EntryRecord, error) {
	var rec model.EntryRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, entryKey(name), &rec, name)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *BadgerStore) ListEntries() ([]*model.EntryRecord, error) {
	var out []*model.EntryRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("entry/")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec model.EntryRecord
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read entry value: %w", err)
			}
			if err := json.Unmarshal(val, &rec); err != nil {
				return errclass.ErrStorageCorruption.WithMessagef(
					"entry record %s: %v", it.Item().Key(), err)
			}
			out = append(out, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) AppendRevision(name string, rev *model.Revision) error {
	return s.update(func(txn *badger.Txn) error {
		if err := requireEntry(txn, name); err != nil {
			return err
		}
		return setJSON(txn, revKey(name, rev.Sequence), rev)
	})
}

func (s *BadgerStore) Revisions(name string) ([]*model.Revision, error) {
	var out []*model.Revision
	err := s.db.View(func(txn *badger.Txn) error {
		if err := requireEntry(txn, name); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = revPrefix(name)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rev model.Revision
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read revision value: %w", err)
			}
			if err := json.Unmarshal(val, &rev); err != nil {
				return errclass.ErrStorageCorruption.WithMessagef(
					"revision log for %s: malformed record %d", name, len(out)+1)
			}
			if rev.Sequence != int64(len(out))+1 {
				return errclass.ErrStorageCorruption.WithMessagef(
					"revision log for %s: sequence %d at record %d", name, rev.Sequence, len(out)+1)
			}
			out = append(out, &rev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) AppendComment(c *model.Comment) error {
	return s.update(func(txn *badger.Txn) error {
		if err := requireEntry(txn, c.EntryName); err != nil {
			return err
		}

		var next uint64 = 1
		item, err := txn.Get(cmtSeqKey(c.EntryName))
		switch {
		case err == nil:
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read comment counter: %w", err)
			}
			if len(val) == 8 {
				next = binary.BigEndian.Uint64(val) + 1
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("get comment counter: %w", err)
		}

		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], next)
		if err := txn.Set(cmtSeqKey(c.EntryName), buf[:]); err != nil {
			return fmt.Errorf("set comment counter: %w", err)
		}
		return setJSON(txn, cmtKey(c.EntryName, next), c)
	})
}

func (s *BadgerStore) Comments(name string) ([]*model.Comment, error) {
	var out []*model.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		if err := requireEntry(txn, name); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = cmtPrefix(name)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var c model.Comment
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read comment value: %w", err)
			}
			if err := json.Unmarshal(val, &c); err != nil {
				return errclass.ErrStorageCorruption.WithMessagef(
					"comment log for %s: malformed record %d", name, len(out)+1)
			}
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// update runs fn in a read-write transaction, retrying on optimistic
// conflicts (concurrent comment appends to the same entry can collide).
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	for {
		err := s.db.Update(fn)
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
}

func requireEntry(txn *badger.Txn, name string) error {
	_, err := txn.Get(entryKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	if err != nil {
		return fmt.Errorf("check entry key: %w", err)
	}
	return nil
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set(key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func getJSON(txn *badger.Txn, key []byte, v any, name string) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, v); err != nil {
		return errclass.ErrStorageCorruption.WithMessagef("record %s: %v", key, err)
	}
	return nil
}
