package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// ClosingHandler handles closing period HTTP requests
type ClosingHandler struct {
	closingService *service.ClosingService
}

// NewClosingHandler creates a new closing handler
func NewClosingHandler(closingService *service.ClosingService) *ClosingHandler {
	return &ClosingHandler{closingService: closingService}
}

// Create handles opening a new closing period
func (h *ClosingHandler) Create(c *gin.Context) {
	var req struct {
		Period string `json:"period" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	closing, err := h.closingService.CreatePeriod(c.Request.Context(), req.Period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Closing period created successfully", closing)
}

// List handles listing closing periods
func (h *ClosingHandler) List(c *gin.Context) {
	periods, err := h.closingService.ListPeriods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing periods retrieved successfully", periods)
}

// Get handles retrieving one closing period
func (h *ClosingHandler) Get(c *gin.Context) {
	closing, err := h.closingService.GetPeriod(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing period retrieved successfully", closing)
}

// Import handles importing the finalized closing report for a period
func (h *ClosingHandler) Import(c *gin.Context) {
	var req struct {
		Records []service.ReportRecordInput `json:"records" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	count, err := h.closingService.ImportReport(c.Request.Context(), c.Param("period"), req.Records)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing report imported successfully", gin.H{
		"imported": count,
	})
}

// Analyze handles running divergence analysis over a period
func (h *ClosingHandler) Analyze(c *gin.Context) {
	counts, err := h.closingService.Analyze(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analysis completed successfully", gin.H{
		"divergences_by_type": counts,
	})
}

// Finalize handles ledger ingestion and commission recalculation for a period
func (h *ClosingHandler) Finalize(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	closing, err := h.closingService.Finalize(c.Request.Context(), c.Param("period"), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing finalized successfully", closing)
}

// Lock handles locking a closing period
func (h *ClosingHandler) Lock(c *gin.Context) {
	closing, err := h.closingService.Lock(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Period locked successfully", closing)
}

// Summary handles retrieving a period's reconciliation summary
func (h *ClosingHandler) Summary(c *gin.Context) {
	summary, err := h.closingService.Summary(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Period summary retrieved successfully", summary)
}
