package store

import (
	"context"

	"github.com/cost-guardian/dashboard/pkg/models/store"
)

// RecordStore reads resource status events from the backing table.
// Implementations page through results until the backend reports no
// continuation token.
type RecordStore interface {
	Scan(ctx context.Context, filter store.Filter) ([]store.Item, error)
}
