package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"speakofy-backend/internal/documents"
	"speakofy-backend/internal/llm"
	"speakofy-backend/internal/session"
	"speakofy-backend/internal/shared/metrics"
)

// Choice is one selectable catalog entry.
type Choice struct {
	Label      string `json:"label"`
	DocumentID int64  `json:"documentId"`
}

// Service lists the cross-owner catalog, resolves selections, and answers
// questions grounded in the selected document. Every operation takes the
// session explicitly; nothing reads ambient state.
type Service struct {
	Docs documents.Repo
	LLM  llm.Client
}

// ListSelectable returns every document as a labeled choice, newest first.
// ErrEmptyCatalog when no documents exist system-wide.
func (s *Service) ListSelectable(ctx context.Context) ([]Choice, error) {
	entries, err := s.Docs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	choices := make([]Choice, 0, len(entries))
	for _, entry := range entries {
		choices = append(choices, Choice{Label: Label(entry), DocumentID: entry.ID})
	}
	return choices, nil
}

// Label derives the display label for a catalog entry.
func Label(entry documents.Entry) string {
	owner := entry.OwnerName
	if owner == "" {
		owner = "Unknown"
	}
	return fmt.Sprintf("%s (by %s)", entry.Filename, owner)
}

// ResolveSelection maps a label back to a document id by exact match.
// Duplicate labels resolve to the first entry in list order; two same-named
// uploads by the same guardian are indistinguishable here, a known
// limitation. Callers must resolve against the same listing they displayed.
func ResolveSelection(choices []Choice, label string) (int64, error) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice.DocumentID, nil
		}
	}
	return 0, ErrSelectionNotFound
}

// LoadSelected fetches the document text and records it as the session's
// selection. A stale id yields ErrSelectionNotFound and leaves the
// session's prior selection untouched.
func (s *Service) LoadSelected(ctx context.Context, sess *session.Session, documentID int64) (string, error) {
	if sess == nil || documentID <= 0 {
		return "", ErrInvalidInput
	}
	text, err := s.Docs.GetText(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return "", ErrSelectionNotFound
		}
		return "", err
	}
	sess.Cache.SetSelection(documentID, text)
	return text, nil
}

// Ask answers the question from the session's cached selection.
func (s *Service) Ask(ctx context.Context, sess *session.Session, question string) (string, error) {
	if sess == nil {
		return "", ErrInvalidInput
	}
	_, text, ok := sess.Cache.Selection()
	if !ok {
		return "", ErrNoSelection
	}
	return s.Answer(ctx, text, question)
}

// Answer makes exactly one model call with the grounding prompt. Failures
// surface immediately as ErrModel; no retry.
func (s *Service) Answer(ctx context.Context, documentText, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrInvalidInput
	}

	metrics.IncAnswerStarted()
	start := time.Now()
	answer, err := s.LLM.Generate(ctx, GroundingPrompt(documentText, question))
	metrics.ObserveAnswerDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncAnswerFailed()
		return "", fmt.Errorf("%w: %v", ErrModel, err)
	}
	metrics.IncAnswerCompleted()
	return answer, nil
}
