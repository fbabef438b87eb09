package bolt

import (
	"path/filepath"
	"testing"

	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/storage/storagetest"
)

func openTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore(t *testing.T) {
	storagetest.Run(t, openTestStore)
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for blank path")
	}
}
