package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"svw.info/sodo/internal/domain"
)

const puzzlePrefix = "puzzle/"

// Badger stores puzzles as JSON values in an embedded key-value store,
// keyed by "puzzle/<id>". An alternative to FS for installs that want one
// data file instead of a directory tree.
type Badger struct{ db *badger.DB }

func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

// Close flushes and closes the store. The serve command defers this.
func (s *Badger) Close() error { return s.db.Close() }

func (s *Badger) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(puzzlePrefix+p.ID), data)
	})
}

func (s *Badger) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var out domain.Puzzle
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(puzzlePrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return &out, nil
}

func (s *Badger) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(puzzlePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var meta domain.PuzzleMeta
				if err := json.Unmarshal(val, &meta); err != nil || meta.ID == "" {
					return nil // skip unreadable entries
				}
				out = append(out, meta)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}
