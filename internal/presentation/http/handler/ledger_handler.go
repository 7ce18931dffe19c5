package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// LedgerHandler handles ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List handles listing ledger events with filters
func (h *LedgerHandler) List(c *gin.Context) {
	params := &repository.LedgerFilterParams{
		Pagination: parsePagination(c),
		Period:     c.Query("period"),
		Vendor:     c.Query("vendor"),
		OriginID:   c.Query("origin_id"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		eventType := enum.LedgerEventType(typeStr)
		params.Type = &eventType
	}

	result, err := h.ledgerService.ListEvents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ledger events retrieved successfully", result)
}

// RecordAdjustment handles appending a manual adjustment event
func (h *LedgerHandler) RecordAdjustment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Period      string          `json:"period" binding:"required"`
		OriginID    string          `json:"origin_id" binding:"required"`
		Vendor      string          `json:"vendor" binding:"required"`
		Value       decimal.Decimal `json:"value" binding:"required"`
		Description string          `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.ledgerService.RecordAdjustment(c.Request.Context(), &service.AdjustmentInput{
		Period:      req.Period,
		OriginID:    req.OriginID,
		Vendor:      req.Vendor,
		Value:       req.Value,
		Description: req.Description,
		Actor:       *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Adjustment recorded successfully", event)
}

// Totals handles retrieving per-vendor signed totals for a period
func (h *LedgerHandler) Totals(c *gin.Context) {
	period := c.Query("period")
	totals, err := h.ledgerService.VendorTotals(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor totals retrieved successfully", totals)
}
