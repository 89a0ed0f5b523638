package documents

import "context"

// Repo defines persistence operations for documents. The store is
// append-only: ids are assigned sequentially on Create and rows are
// immutable once visible.
type Repo interface {
	// Create inserts a new record and returns its id. Ids are strictly
	// increasing and unique under concurrent calls.
	Create(ctx context.Context, doc Document) (int64, error)
	// LatestForOwner returns the most recently created document owned by
	// ownerID, by insertion order. ErrNotFound when the owner has none.
	LatestForOwner(ctx context.Context, ownerID int64) (Document, error)
	// ListAll returns every document across all owners, newest first.
	ListAll(ctx context.Context) ([]Entry, error)
	// GetText returns the text of the given id. ErrNotFound for unknown ids.
	GetText(ctx context.Context, id int64) (string, error)
}
