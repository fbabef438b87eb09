// Package driver opens a storage.Store by driver name.
package driver

import (
	"fmt"

	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/storage/bolt"
	"github.com/samdwyer/critterquest/internal/storage/sqlite"
)

// Driver names accepted by Open.
const (
	SQLite = "sqlite"
	Bolt   = "bolt"
)

// Open opens the named driver at path.
func Open(name, path string) (storage.Store, error) {
	switch name {
	case SQLite, "":
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case Bolt:
		store, err := bolt.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", name)
	}
}
