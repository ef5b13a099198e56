// Package storage holds the key-value media the feedback collection is
// persisted to. Every implementation is bound to a single key and stores the
// whole collection as one opaque blob.
package storage

import "context"

// DefaultKey is the logical key the collection lives under.
const DefaultKey = "feedback_entries"

// Storage reads and overwrites one blob. Read reports ok=false when the key
// has never been written.
type Storage interface {
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
}
