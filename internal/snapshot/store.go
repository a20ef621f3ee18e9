package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Package snapshot persists point-in-time copies of remote documents so a
// tree can be exported, inspected offline, and imported into another store.

const (
	documentsBucket = "documents"
	metaBucket      = "meta"
)

// ErrNotFound reports that no snapshot exists for the requested path.
var ErrNotFound = errors.New("snapshot not found")

// Info describes one stored snapshot.
type Info struct {
	Path    string    `json:"path"`
	SavedAt time.Time `json:"saved_at"`
	Bytes   int       `json:"bytes"`
}

// Store is a local BoltDB-backed snapshot archive. Documents are keyed by
// their tree path; the root document is stored under "/".
type Store struct {
	db *bolt.DB
}

// Open initializes the snapshot archive at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot store requires a path")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{documentsBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores the raw JSON document captured for the given tree path,
// replacing any previous snapshot of that path.
func (s *Store) Save(docPath string, body []byte) error {
	if s == nil || s.db == nil {
		return errors.New("snapshot store is not open")
	}
	if !json.Valid(body) {
		return fmt.Errorf("snapshot body for %q is not valid JSON", docPath)
	}

	key := normalizeKey(docPath)
	meta, err := json.Marshal(Info{
		Path:    string(key),
		SavedAt: time.Now().UTC(),
		Bytes:   len(body),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot meta: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket([]byte(documentsBucket))
		if docs == nil {
			return fmt.Errorf("documents bucket missing")
		}
		if err := docs.Put(key, body); err != nil {
			return err
		}

		metas := tx.Bucket([]byte(metaBucket))
		if metas == nil {
			return fmt.Errorf("meta bucket missing")
		}
		return metas.Put(key, meta)
	})
}

// Load returns the stored document and its metadata for the given path.
func (s *Store) Load(docPath string) ([]byte, Info, error) {
	if s == nil || s.db == nil {
		return nil, Info{}, errors.New("snapshot store is not open")
	}

	key := normalizeKey(docPath)
	var body []byte
	var info Info
	err := s.db.View(func(tx *bolt.Tx) error {
		docs := tx.Bucket([]byte(documentsBucket))
		if docs == nil {
			return fmt.Errorf("documents bucket missing")
		}
		stored := docs.Get(key)
		if stored == nil {
			return ErrNotFound
		}
		body = make([]byte, len(stored))
		copy(body, stored)

		metas := tx.Bucket([]byte(metaBucket))
		if metas == nil {
			return fmt.Errorf("meta bucket missing")
		}
		if raw := metas.Get(key); raw != nil {
			if err := json.Unmarshal(raw, &info); err != nil {
				return fmt.Errorf("decode snapshot meta: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, Info{}, err
	}
	return body, info, nil
}

// List returns metadata for every stored snapshot in key order.
func (s *Store) List() ([]Info, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("snapshot store is not open")
	}

	var out []Info
	err := s.db.View(func(tx *bolt.Tx) error {
		metas := tx.Bucket([]byte(metaBucket))
		if metas == nil {
			return fmt.Errorf("meta bucket missing")
		}

		cursor := metas.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var info Info
			if err := json.Unmarshal(v, &info); err != nil {
				return fmt.Errorf("decode snapshot meta for %q: %w", k, err)
			}
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the snapshot for the given path. Deleting a missing
// snapshot is a no-op.
func (s *Store) Delete(docPath string) error {
	if s == nil || s.db == nil {
		return errors.New("snapshot store is not open")
	}

	key := normalizeKey(docPath)
	return s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket([]byte(documentsBucket))
		if docs == nil {
			return fmt.Errorf("documents bucket missing")
		}
		if err := docs.Delete(key); err != nil {
			return err
		}

		metas := tx.Bucket([]byte(metaBucket))
		if metas == nil {
			return fmt.Errorf("meta bucket missing")
		}
		return metas.Delete(key)
	})
}

// normalizeKey maps equivalent spellings of a tree path to one key. The
// root document keys as "/" since Bolt rejects empty keys.
func normalizeKey(docPath string) []byte {
	docPath = strings.Trim(strings.TrimSpace(docPath), "/")
	if docPath == "" {
		return []byte("/")
	}
	return []byte(docPath)
}
