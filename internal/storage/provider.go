// Package storage persists named records as whole-value blobs.
package storage

// Record names used by the application. Each is one row: the template
// collection and the single draft snapshot.
const (
	RecordTemplates = "templates"
	RecordDraft     = "draft"
)

// Provider is the interface for record persistence. Reads and writes are
// always whole-value; there are no partial or incremental updates.
type Provider interface {
	// Read returns the stored blob for name, or apperr.ErrNotFound.
	Read(name string) ([]byte, error)
	// Write overwrites the blob stored under name.
	Write(name string, data []byte) error
	// Delete removes the record; deleting an absent record is a no-op.
	Delete(name string) error
}
