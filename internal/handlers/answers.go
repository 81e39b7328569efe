package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type AnswerHandler struct {
	svc *service.Services
}

// GetAnswers lists a question's answers.
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	answers, err := h.svc.Answers.ListByQuestion(c.Request.Context(), id, c.DefaultQuery("sort", "votes"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// GetAnswer returns a single answer with its comments.
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	answer, err := h.svc.Answers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// CreateAnswer posts an answer to a question.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.svc.Answers.Create(c.Request.Context(), id, input, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Answer created successfully",
		"answer":  answer,
	})
}

// UpdateAnswer edits an answer (author or admin).
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.svc.Answers.Update(c.Request.Context(), id, input, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Answer updated successfully",
		"answer":  answer,
	})
}

// DeleteAnswer removes an answer (author or admin).
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Answers.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}

// VoteAnswer casts an up/down vote on an answer.
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
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

	score, err := h.svc.Votes.CastVote(c.Request.Context(), service.TargetAnswer, id, actor.ID, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded successfully",
		"voteCount": score,
	})
}

// GetAnswerVote reports the caller's current vote on an answer.
func (h *AnswerHandler) GetAnswerVote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	state, err := h.svc.Votes.State(c.Request.Context(), service.TargetAnswer, id, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RetractAnswerVote removes the caller's vote from an answer.
func (h *AnswerHandler) RetractAnswerVote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	score, err := h.svc.Votes.RetractVote(c.Request.Context(), service.TargetAnswer, id, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote removed",
		"voteCount": score,
	})
}
