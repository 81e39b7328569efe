package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type AdminHandler struct {
	svc *service.Services
	log zerolog.Logger
}

// GetDashboard returns platform counters and recent activity.
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	stats, err := h.svc.Admin.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUsers lists users with filters for the admin panel.
func (h *AdminHandler) GetUsers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var query service.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Admin.ListUsers(c.Request.Context(), query, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleBan bans or unbans a user.
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	user, err := h.svc.Moderation.ToggleBan(c.Request.Context(), id, input.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User unbanned successfully"
	if user.IsBanned {
		message = "User banned successfully"
	}
	h.log.Info().Uint("admin_id", actor.ID).Uint("user_id", id).Bool("banned", user.IsBanned).Msg("ban toggled by admin")
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    user,
	})
}

type moderateRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason" binding:"required"`
}

// ModerateQuestion sets a question's status with a reason.
func (h *AdminHandler) ModerateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input moderateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	question, err := h.svc.Moderation.ModerateQuestion(c.Request.Context(), id, models.QuestionStatus(input.Status), input.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Question moderated successfully",
		"question": question,
	})
}

// ModerateAnswer flags an answer with a reason.
func (h *AdminHandler) ModerateAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input moderateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	answer, err := h.svc.Moderation.ModerateAnswer(c.Request.Context(), id, input.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Answer moderated successfully",
		"answer":  answer,
	})
}

// ModerateTag flags a tag with a reason.
func (h *AdminHandler) ModerateTag(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input moderateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	tag, err := h.svc.Moderation.ModerateTag(c.Request.Context(), id, input.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tag moderated successfully",
		"tag":     tag,
	})
}

// SendAlert broadcasts a platform alert to every non-banned user.
func (h *AdminHandler) SendAlert(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and message are required"})
		return
	}

	sent, err := h.svc.Moderation.BroadcastAlert(c.Request.Context(), input.Title, input.Message, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Info().Uint("admin_id", actor.ID).Int("recipients", sent).Msg("platform alert sent")
	c.JSON(http.StatusOK, gin.H{
		"message":    "Alert sent successfully",
		"recipients": sent,
	})
}

// GetModerationQueue lists content awaiting review.
func (h *AdminHandler) GetModerationQueue(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	kind := c.DefaultQuery("type", "questions")

	items, total, err := h.svc.Admin.ModerationQueue(c.Request.Context(), kind, page, limit, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"type":  kind,
	})
}
