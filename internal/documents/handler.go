package documents

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/extract"
	"speakofy-backend/internal/shared/server/middleware"
	"speakofy-backend/internal/shared/server/respond"
)

const maxUploadSize = 50 << 20 // 50MB, book-length PDFs

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusUnprocessableEntity, "empty_extraction", "couldn't extract text from this PDF; try another file", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
		}
		return
	}

	// The fresh upload becomes the session's selection, so Q&A sees it
	// immediately without a store re-read.
	if sess := middleware.SessionFromContext(c); sess != nil {
		sess.Cache.SetSelection(doc.ID, doc.Text)
	}
	c.Set("documentId", doc.ID)

	respond.JSON(c, http.StatusCreated, gin.H{
		"documentId": doc.ID,
		"fileName":   doc.Filename,
		"uploadedAt": doc.CreatedAt,
	})
}
