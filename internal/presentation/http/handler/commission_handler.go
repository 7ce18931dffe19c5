package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// CommissionHandler handles commission HTTP requests
type CommissionHandler struct {
	commissionService *service.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// List handles listing a period's commissions
func (h *CommissionHandler) List(c *gin.Context) {
	commissions, err := h.commissionService.ListByPeriod(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commissions retrieved successfully", commissions)
}

// Recalculate handles regenerating a period's commissions from the ledger
func (h *CommissionHandler) Recalculate(c *gin.Context) {
	var req struct {
		Period string `json:"period" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	commissions, err := h.commissionService.Recalculate(c.Request.Context(), req.Period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commissions recalculated successfully", commissions)
}

// Pay handles marking a commission as paid
func (h *CommissionHandler) Pay(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid commission ID")
		return
	}

	commission, err := h.commissionService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission marked as paid", commission)
}
