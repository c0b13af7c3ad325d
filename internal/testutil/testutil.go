// Package testutil provides shared test helpers for setting up storage and stores.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/templatestore"
)

// TestStorage creates a temporary SQLite-backed record store that is
// automatically cleaned up.
func TestStorage(t *testing.T) *storage.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	store, err := storage.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestTemplateStore creates a loaded template store on temporary storage.
// With no catalog configured it always starts from the embedded default.
func TestTemplateStore(t *testing.T) *templatestore.Store {
	t.Helper()
	s := templatestore.New(TestStorage(t), nil, DiscardLogger())
	s.Load(context.Background())
	return s
}

// DiscardLogger returns a logger that drops all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
