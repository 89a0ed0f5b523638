package documents

import (
	"context"
	"time"

	"speakofy-backend/internal/extract"
	"speakofy-backend/internal/shared/util"
)

// Service contains business logic for documents.
type Service struct {
	Repo Repo
}

// Upload extracts text from the PDF payload and stores it as a new document.
// Uploads with no extractable text are rejected with extract.ErrNoText
// before any record is created.
func (s *Service) Upload(ctx context.Context, ownerID int64, filename string, pdfBytes []byte) (Document, error) {
	if ownerID <= 0 {
		return Document{}, ErrInvalidInput
	}
	clean, err := util.SanitizeFileName(filename)
	if err != nil {
		return Document{}, ErrInvalidInput
	}

	text, err := extract.PDF(pdfBytes)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		OwnerID:   ownerID,
		Filename:  clean,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, doc)
	if err != nil {
		return Document{}, err
	}
	doc.ID = id
	return doc, nil
}

// LatestForOwner returns the owner's most recent document.
func (s *Service) LatestForOwner(ctx context.Context, ownerID int64) (Document, error) {
	if ownerID <= 0 {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.LatestForOwner(ctx, ownerID)
}
