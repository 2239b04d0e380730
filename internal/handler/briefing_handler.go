package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsbrief/internal/model"
)

type BriefingBuilder interface {
	Build(ctx context.Context, topic string) ([]model.BriefingItem, error)
}

type BriefingHandler struct {
	builder BriefingBuilder
}

func NewBriefingHandler(builder BriefingBuilder) *BriefingHandler {
	return &BriefingHandler{builder: builder}
}

func (h *BriefingHandler) GetBriefing(c *gin.Context) {
	topic := c.Query("topic")

	items, err := h.builder.Build(c.Request.Context(), topic)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "error building briefing",
			"topic", topic, "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build briefing"})
		return
	}

	res := make([]BriefingResponse, 0, len(items))
	for _, item := range items {
		res = append(res, BriefingResponse{
			Title:     item.Title,
			Summary:   item.Summary,
			ImagePath: item.ImagePath,
			AudioPath: item.AudioPath,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefingHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Hello from newsbrief"})
}

func (h *BriefingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
