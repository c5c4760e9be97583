// Package storage provides the blob backends an archive of window sets can
// be kept in. Keys are slash-separated paths; values are small encoded
// records.
package storage

import (
	"context"

	"github.com/cockroachdb/errors"
)

var ErrDoesNotExist = errors.New("does not exist")

// System defines the operations for interacting with a storage backend.
type System interface {
	// Write stores data under the given key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error

	// Read returns the data stored under the given key, or ErrDoesNotExist.
	Read(ctx context.Context, key string) ([]byte, error)

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetKeysWithPrefix lists every stored key starting with the prefix.
	GetKeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
