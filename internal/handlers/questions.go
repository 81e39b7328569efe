package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type QuestionHandler struct {
	svc *service.Services
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GetQuestions returns a filtered, sorted page of questions.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	var query models.QuestionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Questions.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetQuestion returns a single question and counts the view.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	question, err := h.svc.Questions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion creates a new question.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.svc.Questions.Create(c.Request.Context(), input, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Question created successfully",
		"question": question,
	})
}

// UpdateQuestion edits a question (author or admin).
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.svc.Questions.Update(c.Request.Context(), id, input, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Question updated successfully",
		"question": question,
	})
}

// DeleteQuestion removes a question and its dependents (author or admin).
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Questions.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// VoteQuestion casts an up/down vote on a question.
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	h.vote(c, service.TargetQuestion)
}

// RetractQuestionVote removes the caller's vote from a question.
func (h *QuestionHandler) RetractQuestionVote(c *gin.Context) {
	h.retract(c, service.TargetQuestion)
}

func (h *QuestionHandler) vote(c *gin.Context, target service.VoteTarget) {
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

	score, err := h.svc.Votes.CastVote(c.Request.Context(), target, id, actor.ID, input.VoteType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote recorded successfully",
		"voteCount": score,
	})
}

func (h *QuestionHandler) retract(c *gin.Context, target service.VoteTarget) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	score, err := h.svc.Votes.RetractVote(c.Request.Context(), target, id, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Vote removed",
		"voteCount": score,
	})
}

// GetQuestionVote reports the caller's current vote on a question.
func (h *QuestionHandler) GetQuestionVote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	state, err := h.svc.Votes.State(c.Request.Context(), service.TargetQuestion, id, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AcceptAnswer marks an answer as accepted (question author only).
func (h *QuestionHandler) AcceptAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		AnswerID uint `json:"answerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answerId is required"})
		return
	}

	if err := h.svc.Acceptance.AcceptAnswer(c.Request.Context(), id, input.AnswerID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Answer accepted successfully",
		"acceptedAnswer": input.AnswerID,
	})
}
