// Package draft persists the autosave snapshot of the in-progress
// composition: one record, overwritten whole on every change.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Store reads and writes the single draft record.
type Store struct {
	store  storage.Provider
	logger *slog.Logger
}

// New creates a draft store.
func New(store storage.Provider, logger *slog.Logger) *Store {
	return &Store{store: store, logger: logger}
}

// Save unconditionally overwrites the persisted draft.
func (s *Store) Save(_ context.Context, d models.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: marshal: %w", err)
	}
	if err := s.store.Write(storage.RecordDraft, data); err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Load returns the persisted draft, or the zero draft when no record exists
// or the record cannot be parsed. Fields are restored individually: a
// partially-written or older-shaped record still fills whatever it carries.
func (s *Store) Load(_ context.Context) models.Draft {
	data, err := s.store.Read(storage.RecordDraft)
	if err != nil {
		return models.Draft{}
	}
	var d models.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		s.logger.Warn("draft: corrupt record ignored", slog.String("error", err.Error()))
		return models.Draft{}
	}
	return d
}

// Clear removes the persisted draft. The template collection is untouched.
func (s *Store) Clear(_ context.Context) error {
	if err := s.store.Delete(storage.RecordDraft); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}
