// Package templatestore owns the template collection: the load fallback
// chain, create/update/delete, search, import-merge with id-collision
// resolution, export, and the persistence write after every mutation.
package templatestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Defaults for freshly created templates.
const (
	defaultTitle    = "New template"
	defaultCategory = "custom"
	starterBody     = "Hi {{client_name}},\n\n"
)

// embeddedDefault is the last rung of the load fallback chain: the one
// template the composer ships with when neither persisted data nor the
// catalog yields anything.
var embeddedDefault = models.Template{
	ID:       "embedded-generic",
	Title:    "Generic acknowledgement",
	Category: "general",
	Tags:     []string{"generic", "acknowledgement"},
	Body:     "Hi {{client_name}},\n\nThanks for reaching out regarding {{issue_summary}}. We'll investigate and follow up shortly.\n\nBest regards,\n{{agent_name}}\n{{current_date}}",
}

// CatalogFetcher retrieves the remote bootstrap catalog.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]models.Template, error)
}

// Store holds the in-memory template collection backed by a record store.
// The inbox importer merges from its own goroutine while HTTP handlers
// mutate concurrently, so the collection is guarded by a mutex. Each call
// runs to completion, including its persistence write, before releasing it.
type Store struct {
	store   storage.Provider
	catalog CatalogFetcher // nil when no catalog URL is configured
	logger  *slog.Logger

	mu        sync.RWMutex
	templates []models.Template
}

// New creates a Store. catalog may be nil to skip the remote bootstrap step.
func New(store storage.Provider, catalog CatalogFetcher, logger *slog.Logger) *Store {
	return &Store{store: store, catalog: catalog, logger: logger}
}

// ExportPayload is the serialized collection shape. A payload written by
// Export on one run is valid ImportMerge input on a later one.
type ExportPayload struct {
	Templates []models.Template `json:"templates"`
}

// Load populates the collection from the first usable source: the persisted
// record, then the remote catalog (persisted immediately as the new
// baseline), then the embedded default. Missing or corrupt persisted data
// and catalog failures are logged and skipped; Load never fails startup.
func (s *Store) Load(ctx context.Context) {
	sources := []struct {
		name string
		load func(context.Context) ([]models.Template, bool)
	}{
		{"persisted", s.loadPersisted},
		{"catalog", s.loadCatalog},
		{"embedded", s.loadEmbedded},
	}
	for _, src := range sources {
		ts, ok := src.load(ctx)
		if !ok {
			continue
		}
		s.mu.Lock()
		s.templates = normalize(ts)
		s.mu.Unlock()
		s.logger.Info("templatestore: loaded",
			slog.String("source", src.name),
			slog.Int("count", len(ts)))
		return
	}
}

func (s *Store) loadPersisted(_ context.Context) ([]models.Template, bool) {
	data, err := s.store.Read(storage.RecordTemplates)
	if err != nil {
		return nil, false
	}
	var ts []models.Template
	if err := json.Unmarshal(data, &ts); err != nil {
		s.logger.Warn("templatestore: corrupt persisted collection, falling back",
			slog.String("error", err.Error()))
		return nil, false
	}
	return ts, true
}

func (s *Store) loadCatalog(ctx context.Context) ([]models.Template, bool) {
	if s.catalog == nil {
		return nil, false
	}
	ts, err := s.catalog.Fetch(ctx)
	if err != nil {
		s.logger.Warn("templatestore: catalog fetch failed, falling back",
			slog.String("error", err.Error()))
		return nil, false
	}
	s.persistList(ts)
	return ts, true
}

func (s *Store) loadEmbedded(_ context.Context) ([]models.Template, bool) {
	ts := []models.Template{embeddedDefault}
	s.persistList(ts)
	return ts, true
}

// All returns a copy of the collection in most-recent-first order.
func (s *Store) All() []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all()
}

// all copies the collection. Callers hold s.mu.
func (s *Store) all() []models.Template {
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Get returns the template with the given id.
func (s *Store) Get(id string) (models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

// Create inserts a new template with a fresh id and starter content at the
// front of the collection and returns it.
func (s *Store) Create(_ context.Context) models.Template {
	t := models.Template{
		ID:       "tmpl-" + uuid.NewString(),
		Title:    defaultTitle,
		Category: defaultCategory,
		Tags:     []string{},
		Body:     starterBody,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append([]models.Template{t}, s.templates...)
	s.persist()
	return t
}

// Patch carries optional field overrides for Update. Nil fields keep the
// stored value. An empty Title also keeps the stored title, so a cleared
// title field cannot wipe it. TagsCSV is split on commas with entries
// trimmed and empties discarded.
type Patch struct {
	Title   *string
	Body    *string
	TagsCSV *string
}

// Update overwrites the patched fields of the template with the given id.
// An unknown id is a silent no-op.
func (s *Store) Update(_ context.Context, id string, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		if p.Title != nil && *p.Title != "" {
			s.templates[i].Title = *p.Title
		}
		if p.TagsCSV != nil {
			s.templates[i].Tags = splitTags(*p.TagsCSV)
		}
		if p.Body != nil {
			s.templates[i].Body = *p.Body
		}
		s.persist()
		return
	}
}

// Delete removes the template with the given id; absent ids are a no-op.
func (s *Store) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		s.templates = append(s.templates[:i], s.templates[i+1:]...)
		s.persist()
		return
	}
}

// Search returns templates whose title, tags, or body contain the query,
// case-insensitively. An empty query returns the full collection. Result
// order preserves collection order; there is no relevance ranking.
func (s *Store) Search(query string) []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.all()
	}
	out := []models.Template{}
	for _, t := range s.templates {
		haystack := strings.ToLower(t.Title + " " + strings.Join(t.Tags, " ") + " " + t.Body)
		if strings.Contains(haystack, q) {
			out = append(out, t)
		}
	}
	return out
}

// Export returns the serializable snapshot of the full collection.
func (s *Store) Export() ExportPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportPayload{Templates: s.all()}
}

// ImportMerge appends the incoming templates to the collection. Items
// without an id get a fresh one; ids that collide with the stored
// collection or with an id already assigned earlier in this batch are
// suffixed and retried until unique, in sequence order, so two incoming
// items sharing an original id never collide with each other. Existing
// templates are never overwritten. Returns only the appended templates,
// with their final ids.
func (s *Store) ImportMerge(_ context.Context, incoming []models.Template) []models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := make(map[string]struct{}, len(s.templates)+len(incoming))
	for _, t := range s.templates {
		taken[t.ID] = struct{}{}
	}
	appended := make([]models.Template, 0, len(incoming))
	for _, t := range incoming {
		if t.ID == "" {
			t.ID = "import-" + uuid.NewString()
		}
		for {
			if _, dup := taken[t.ID]; !dup {
				break
			}
			t.ID += "-dup-" + randSuffix(4)
		}
		taken[t.ID] = struct{}{}
		t.Tags = nonNilTags(t.Tags)
		s.templates = append(s.templates, t)
		appended = append(appended, t)
	}
	s.persist()
	return appended
}

// DecodeExport parses raw bytes as an export payload. A document without a
// templates list is reported as apperr.ErrInvalidImport.
func DecodeExport(data []byte) ([]models.Template, error) {
	var raw struct {
		Templates json.RawMessage `json:"templates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("templatestore: %w: %v", apperr.ErrInvalidImport, err)
	}
	if len(raw.Templates) == 0 || string(raw.Templates) == "null" {
		return nil, fmt.Errorf("templatestore: %w: missing templates list", apperr.ErrInvalidImport)
	}
	var ts []models.Template
	if err := json.Unmarshal(raw.Templates, &ts); err != nil {
		return nil, fmt.Errorf("templatestore: %w: templates is not a list", apperr.ErrInvalidImport)
	}
	return ts, nil
}

// persist writes the collection to the record store. A write failure is
// logged and the in-memory change stands; durability here is at-least-once,
// not transactional.
func (s *Store) persist() {
	s.persistList(s.templates)
}

func (s *Store) persistList(ts []models.Template) {
	data, err := json.Marshal(normalize(ts))
	if err != nil {
		s.logger.Warn("templatestore: marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := s.store.Write(storage.RecordTemplates, data); err != nil {
		s.logger.Warn("templatestore: persist failed", slog.String("error", err.Error()))
	}
}

func splitTags(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func normalize(ts []models.Template) []models.Template {
	out := make([]models.Template, len(ts))
	for i, t := range ts {
		t.Tags = nonNilTags(t.Tags)
		out[i] = t
	}
	return out
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randSuffix returns n random base36 characters from the process-wide
// source. Collision resolution re-invokes it until the candidate id is
// genuinely unique; a single attempt is not assumed sufficient.
func randSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
