package documents

import (
	"context"
	"sync"
)

// NameResolver resolves an owner id to a display name for catalog listings.
// The users memory repo implements this; Postgres does the join in SQL.
type NameResolver interface {
	DisplayName(ctx context.Context, ownerID int64) (string, bool)
}

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	docs   []Document
	nextID int64
	names  NameResolver
}

// NewMemoryRepo constructs a MemoryRepo. names may be nil, in which case
// every catalog entry lists an unknown owner.
func NewMemoryRepo(names NameResolver) *MemoryRepo {
	return &MemoryRepo{names: names}
}

// Create appends a new document under the lock, so ids are strictly
// increasing and a concurrent reader sees the row fully or not at all.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if doc.OwnerID <= 0 || doc.Filename == "" || doc.Text == "" {
		return 0, ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	doc.ID = r.nextID
	r.docs = append(r.docs, doc)
	return doc.ID, nil
}

// LatestForOwner returns the owner's most recently created document.
func (r *MemoryRepo) LatestForOwner(ctx context.Context, ownerID int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.docs) - 1; i >= 0; i-- {
		if r.docs[i].OwnerID == ownerID {
			return r.docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListAll returns all documents newest first with owner names resolved.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	docs := make([]Document, len(r.docs))
	copy(docs, r.docs)
	r.mu.RUnlock()

	var out []Entry
	for i := len(docs) - 1; i >= 0; i-- {
		entry := Entry{
			ID:       docs[i].ID,
			Filename: docs[i].Filename,
			OwnerID:  docs[i].OwnerID,
		}
		if r.names != nil {
			if name, ok := r.names.DisplayName(ctx, docs[i].OwnerID); ok {
				entry.OwnerName = name
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetText returns the text for the given document id.
func (r *MemoryRepo) GetText(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			return r.docs[i].Text, nil
		}
	}
	return "", ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
