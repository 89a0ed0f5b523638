package qa

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/shared/server/middleware"
	"speakofy-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the Q&A service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog, selection, and question routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.catalog)
	rg.POST("/documents/select", h.selectDocument)
	rg.POST("/qa", h.ask)
}

func (h *Handler) catalog(c *gin.Context) {
	choices, err := h.Svc.ListSelectable(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrEmptyCatalog) {
			respond.Error(c, http.StatusNotFound, "empty_catalog", "no books uploaded yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list books", nil)
		return
	}
	respond.OK(c, gin.H{"choices": choices})
}

type selectRequest struct {
	DocumentID int64  `json:"documentId"`
	Label      string `json:"label"`
}

func (h *Handler) selectDocument(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	documentID := req.DocumentID
	if documentID == 0 && req.Label != "" {
		// Labels resolve against a freshly derived listing so the label and
		// the mapping can never diverge mid-interaction.
		choices, err := h.Svc.ListSelectable(c.Request.Context())
		if err != nil {
			if errors.Is(err, ErrEmptyCatalog) {
				respond.Error(c, http.StatusNotFound, "empty_catalog", "no books uploaded yet", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve selection", nil)
			return
		}
		documentID, err = ResolveSelection(choices, req.Label)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "selection_not_found", "that book is no longer listed; refresh and pick again", nil)
			return
		}
	}
	if documentID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId or label is required", nil)
		return
	}

	sess := middleware.SessionFromContext(c)
	_, err := h.Svc.LoadSelected(c.Request.Context(), sess, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelectionNotFound):
			respond.Error(c, http.StatusNotFound, "selection_not_found", "that book is no longer available; refresh and pick again", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load book", nil)
		}
		return
	}
	c.Set("documentId", documentID)

	respond.OK(c, gin.H{"documentId": documentID})
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sess := middleware.SessionFromContext(c)
	answer, err := h.Svc.Ask(c.Request.Context(), sess, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSelection):
			respond.Error(c, http.StatusConflict, "no_selection", "select a book before asking questions", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		case errors.Is(err, ErrModel):
			respond.Error(c, http.StatusBadGateway, "model_error", "the language model call failed; try again", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question", nil)
		}
		return
	}

	respond.OK(c, gin.H{"answer": answer})
}
