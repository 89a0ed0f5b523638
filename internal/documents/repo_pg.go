package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. Id assignment rides the documents
// sequence, so concurrent Creates never collide, and the insert commits
// before Create returns.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new immutable document record.
func (r *PGRepo) Create(ctx context.Context, doc Document) (int64, error) {
	if doc.OwnerID <= 0 || doc.Filename == "" || doc.Text == "" {
		return 0, ErrInvalidInput
	}
	const query = `
INSERT INTO documents (user_id, filename, content, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	err := r.DB.QueryRowContext(ctx, query, doc.OwnerID, doc.Filename, doc.Text, doc.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LatestForOwner returns the owner's most recent document by insertion order.
func (r *PGRepo) LatestForOwner(ctx context.Context, ownerID int64) (Document, error) {
	const query = `
SELECT id, user_id, filename, content, created_at
FROM documents
WHERE user_id = $1
ORDER BY id DESC
LIMIT 1`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Filename,
		&doc.Text,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListAll returns every document across all owners, newest first, with the
// owner name resolved via a left join so orphaned rows still list.
func (r *PGRepo) ListAll(ctx context.Context) ([]Entry, error) {
	const query = `
SELECT d.id, d.filename, d.user_id, u.name
FROM documents d
LEFT JOIN users u ON u.id = d.user_id
ORDER BY d.id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var ownerName sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Filename, &entry.OwnerID, &ownerName); err != nil {
			return nil, err
		}
		if ownerName.Valid {
			entry.OwnerName = ownerName.String
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// GetText returns the stored text for the given document id.
func (r *PGRepo) GetText(ctx context.Context, id int64) (string, error) {
	const query = `
SELECT content
FROM documents
WHERE id = $1
LIMIT 1`
	var text string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return text, nil
}

var _ Repo = (*PGRepo)(nil)
