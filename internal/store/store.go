package store

import (
	"github.com/fogwalk/fogwalk-backend-go/internal/models"
)

// SegmentStore is the keyed collection of segment records for the local
// device. Implementations must provide upsert semantics (Put overwrites by
// id) and immediate read-your-own-write visibility within the process.
// Both the reveal engine and the sync merger write through this interface;
// they serialize their check-then-insert sequences with a shared mutex, so
// implementations themselves only need to be safe for that single-writer
// discipline plus concurrent reads.
type SegmentStore interface {
	// Get returns the record for id, or (nil, nil) if absent.
	Get(id string) (*models.SegmentRecord, error)
	// Put inserts or replaces the record keyed by its id.
	Put(record *models.SegmentRecord) error
	// ListAll returns every stored record.
	ListAll() ([]models.SegmentRecord, error)
	// Contains reports whether a record with the id exists.
	Contains(id string) (bool, error)
}
