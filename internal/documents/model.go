package documents

import "time"

// Document is one stored, immutably-extracted text body from a single PDF
// upload, owned by one user. Re-uploads create new rows; nothing is ever
// updated or deleted.
type Document struct {
	ID        int64
	OwnerID   int64
	Filename  string
	Text      string
	CreatedAt time.Time
}

// Entry is one row of the cross-owner catalog. OwnerName is empty when the
// owner record is missing.
type Entry struct {
	ID        int64
	Filename  string
	OwnerID   int64
	OwnerName string
}
