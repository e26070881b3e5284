// Package blob stores file content bytes under opaque storage keys,
// decoupled from the metadata rows in the files table. Two backends exist:
// Postgres bytea rows (default) and an S3-compatible object store.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the content backend used by the file service. Content is always
// handled as a whole in memory; there is no streaming interface.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewStorageKey returns a fresh date-bucketed object key.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}
