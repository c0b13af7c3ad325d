// Package importer watches an inbox directory for template export files
// and merges them into the template store.
package importer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/templatestore"
)

// TemplateMerger is the slice of the template store the importer needs.
type TemplateMerger interface {
	ImportMerge(ctx context.Context, incoming []models.Template) []models.Template
}

// EventCallback is called after each successful inbox import with the ids
// of the merged templates.
type EventCallback func(ids []string)

// Watch starts an fsnotify watcher on the inbox directory and processes
// dropped export files until ctx is cancelled. Files already present in
// the inbox are swept once at startup.
//
// A valid file is merged and renamed with an .imported suffix; a file
// that fails to decode is renamed with a .rejected suffix so it is not
// retried. Only .json files are considered.
func Watch(ctx context.Context, store TemplateMerger, inbox string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(inbox); err != nil {
		return err
	}

	logger.Info("importer: started", slog.String("inbox", inbox))

	sweep(ctx, store, inbox, logger, cb)

	for {
		select {
		case <-ctx.Done():
			logger.Info("importer: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			process(ctx, store, ev.Name, logger, cb)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("importer: error", slog.String("error", watchErr.Error()))
		}
	}
}

// sweep imports any .json files sitting in the inbox from before startup.
func sweep(ctx context.Context, store TemplateMerger, inbox string, logger *slog.Logger, cb EventCallback) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		logger.Warn("importer: sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		process(ctx, store, filepath.Join(inbox, e.Name()), logger, cb)
	}
}

func process(ctx context.Context, store TemplateMerger, path string, logger *slog.Logger, cb EventCallback) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Create events can race with the producer still moving the file.
		if !os.IsNotExist(err) {
			logger.Warn("importer: read failed", slog.String("file", path), slog.String("error", err.Error()))
		}
		return
	}

	incoming, err := templatestore.DecodeExport(data)
	if err != nil {
		logger.Warn("importer: rejected", slog.String("file", path), slog.String("error", err.Error()))
		if renameErr := os.Rename(path, path+".rejected"); renameErr != nil {
			logger.Warn("importer: rename failed", slog.String("file", path), slog.String("error", renameErr.Error()))
		}
		return
	}

	merged := store.ImportMerge(ctx, incoming)
	if renameErr := os.Rename(path, path+".imported"); renameErr != nil {
		logger.Warn("importer: rename failed", slog.String("file", path), slog.String("error", renameErr.Error()))
	}

	ids := make([]string, 0, len(merged))
	for _, t := range merged {
		ids = append(ids, t.ID)
	}
	logger.Info("importer: merged", slog.String("file", path), slog.Int("count", len(ids)))
	if cb != nil {
		cb(ids)
	}
}
