package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

type TagHandler struct {
	svc *service.Services
}

// GetTags lists all tags ordered by usage.
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.svc.Tags.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag returns a tag by name.
func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.svc.Tags.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
