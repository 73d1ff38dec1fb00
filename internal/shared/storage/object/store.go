package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for storing transient binary objects.
// PublicURL must resolve while the object exists; Remove deletes by key.
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	PublicURL(storageKey string) string
	Remove(ctx context.Context, storageKey string) error
}
