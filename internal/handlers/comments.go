package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type CommentHandler struct {
	svc *service.Services
}

// GetComments lists an answer's comments with replies.
func (h *CommentHandler) GetComments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.svc.Comments.ListByAnswer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment posts a comment on an answer, optionally threaded.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.svc.Comments.Create(c.Request.Context(), id, input, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// DeleteComment removes a comment and its replies (author or admin).
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Comments.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// VoteComment casts an up/down vote on a comment.
func (h *CommentHandler) VoteComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voteType must be upvote or downvote"})
		return
	}

	score, err := h.svc.Votes.CastVote(c.Request.Context(), service.TargetComment, id, actor.ID, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded successfully",
		"voteCount": score,
	})
}
