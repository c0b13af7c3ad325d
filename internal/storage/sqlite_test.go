package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

func tempStore(t *testing.T) *SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ansuz-storage-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteAndRead(t *testing.T) {
	s := tempStore(t)
	if err := s.Write("templates", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("templates")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Errorf("data = %q", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("draft", []byte("one"))
	if err := s.Write("draft", []byte("two")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("draft")
	if string(got) != "two" {
		t.Errorf("data = %q, want two", got)
	}
}

func TestReadMissing(t *testing.T) {
	s := tempStore(t)
	_, err := s.Read("nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("draft", []byte("x"))
	if err := s.Delete("draft"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("draft"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	s := tempStore(t)
	if err := s.Delete("never-written"); err != nil {
		t.Errorf("Delete of absent record: %v", err)
	}
}

func TestRecordsAreIndependent(t *testing.T) {
	s := tempStore(t)
	_ = s.Write(RecordTemplates, []byte("[]"))
	_ = s.Write(RecordDraft, []byte("{}"))
	if err := s.Delete(RecordDraft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read(RecordTemplates); err != nil {
		t.Errorf("templates record should survive draft delete: %v", err)
	}
}
