package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// InsightHandler handles insight HTTP requests
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Get handles generating a period analysis
func (h *InsightHandler) Get(c *gin.Context) {
	text, err := h.insightService.GeneratePeriodInsight(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Insight generated successfully", gin.H{
		"period":   c.Param("period"),
		"analysis": text,
	})
}
