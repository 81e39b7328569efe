package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/config"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/middleware"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

// Handler combines all handler types.
type Handler struct {
	Auth         *AuthHandler
	Question     *QuestionHandler
	Answer       *AnswerHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
	Tag          *TagHandler
}

// NewHandler creates a unified handler with all sub-handlers.
func NewHandler(db *gorm.DB, svc *service.Services, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		Auth:         &AuthHandler{db: db, cfg: cfg},
		Question:     &QuestionHandler{svc: svc},
		Answer:       &AnswerHandler{svc: svc},
		Comment:      &CommentHandler{svc: svc},
		Notification: &NotificationHandler{svc: svc},
		Admin:        &AdminHandler{svc: svc, log: log},
		Tag:          &TagHandler{svc: svc},
	}
}

// respondError maps the service error taxonomy onto HTTP responses. Callers
// always get a specific kind, never a generic failure with free text to
// parse.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	case errors.Is(err, service.ErrSelfVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot vote on your own content"})
	case errors.Is(err, service.ErrDuplicateAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already answered this question"})
	case errors.Is(err, service.ErrMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflicting concurrent update, retry"})
	case errors.Is(err, service.ErrTransientStore):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func currentActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return actor, ok
}
