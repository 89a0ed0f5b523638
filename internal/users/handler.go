package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"speakofy-backend/internal/documents"
	"speakofy-backend/internal/session"
	"speakofy-backend/internal/shared/auth"
	"speakofy-backend/internal/shared/server/middleware"
	"speakofy-backend/internal/shared/server/respond"
	"speakofy-backend/internal/shared/telemetry"
)

const dateLayout = "2006-01-02"

// Handler wires HTTP handlers to the account service. Login starts a
// session and seeds its cache from the guardian's latest document.
type Handler struct {
	Svc      *Service
	Docs     documents.Repo
	Sessions *session.Manager
	Signer   *auth.Signer
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs documents.Repo, sessions *session.Manager, signer *auth.Signer) *Handler {
	return &Handler{Svc: svc, Docs: docs, Sessions: sessions, Signer: signer}
}

// RegisterRoutes attaches auth routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/logout", h.logout)
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DateOfBirth     string `json:"dateOfBirth"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "dateOfBirth must be YYYY-MM-DD", nil)
		return
	}

	user, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword, dob)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and password are required", nil)
		case errors.Is(err, ErrPasswordMismatch):
			respond.Error(c, http.StatusBadRequest, "password_mismatch", err.Error(), nil)
		case errors.Is(err, ErrUnderage):
			respond.Error(c, http.StatusForbidden, "underage", "you must be 25+ years old", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	sess := h.Sessions.Create(user.ID, user.Name)

	// Preload the guardian's latest book so Q&A works right after login.
	latest, err := h.Docs.LatestForOwner(c.Request.Context(), user.ID)
	switch {
	case err == nil:
		sess.Cache.SetSelection(latest.ID, latest.Text)
	case !errors.Is(err, documents.ErrNotFound):
		telemetry.Error("login.seed_selection", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	token, err := h.Signer.Sign(user.ID, user.Name, sess.ID)
	if err != nil {
		h.Sessions.Delete(sess.ID)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	respond.OK(c, gin.H{
		"token":  token,
		"userId": user.ID,
		"name":   user.Name,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if sess := middleware.SessionFromContext(c); sess != nil {
		h.Sessions.Delete(sess.ID)
	}
	c.Status(http.StatusNoContent)
}
