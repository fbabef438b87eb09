// Package bolt provides a BoltDB-backed save store. Each slot is one JSON
// document.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

const saveBucket = "saves"

// Store provides a BoltDB-backed save store.
type Store struct {
	db *bbolt.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the save in slot.
func (s *Store) Save(ctx context.Context, slot string, data *game.SaveData) error {
	ctx, span := telemetry.Tracer("storage").Start(ctx, "storage.save")
	span.SetAttributes(attribute.String("driver", "bolt"), attribute.String("slot", slot))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot is required")
	}
	if data == nil {
		return fmt.Errorf("save data is required")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(saveBucket))
		if bucket == nil {
			return fmt.Errorf("save bucket is missing")
		}
		return bucket.Put([]byte(slot), payload)
	})
}

// Load reads the save in slot.
func (s *Store) Load(ctx context.Context, slot string) (*game.SaveData, error) {
	ctx, span := telemetry.Tracer("storage").Start(ctx, "storage.load")
	span.SetAttributes(attribute.String("driver", "bolt"), attribute.String("slot", slot))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var data game.SaveData
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(saveBucket))
		if bucket == nil {
			return fmt.Errorf("save bucket is missing")
		}
		payload := bucket.Get([]byte(slot))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, &data); err != nil {
			return fmt.Errorf("unmarshal save: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// List returns every save, most recent first.
func (s *Store) List(ctx context.Context) ([]storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var slots []storage.Slot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(saveBucket))
		if bucket == nil {
			return fmt.Errorf("save bucket is missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var data game.SaveData
			if err := json.Unmarshal(v, &data); err != nil {
				return fmt.Errorf("unmarshal save %s: %w", k, err)
			}
			slots = append(slots, storage.Slot{
				Name:      string(k),
				SessionID: data.SessionID,
				AreaID:    data.AreaID,
				Money:     data.Money,
				SavedAt:   data.SavedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].SavedAt.After(slots[j].SavedAt)
	})
	return slots, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(saveBucket)); err != nil {
			return fmt.Errorf("create save bucket: %w", err)
		}
		return nil
	})
}
