package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// ReceivableHandler handles receivable HTTP requests
type ReceivableHandler struct {
	receivableService *service.ReceivableService
}

// NewReceivableHandler creates a new receivable handler
func NewReceivableHandler(receivableService *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// List handles listing receivables with filters
func (h *ReceivableHandler) List(c *gin.Context) {
	params := &repository.ReceivableFilterParams{
		Pagination:  parsePagination(c),
		Period:      c.Query("period"),
		Client:      c.Query("client"),
		Vendor:      c.Query("vendor"),
		OverdueOnly: c.Query("overdue") == "true",
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ReceivableStatus(statusStr)
		params.Status = &status
	}

	result, err := h.receivableService.ListReceivables(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receivables retrieved successfully", result)
}

// Get handles retrieving one receivable with its settlement history
func (h *ReceivableHandler) Get(c *gin.Context) {
	receivable, err := h.receivableService.GetReceivable(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receivable retrieved successfully", receivable)
}

// Settle handles registering a payment against a receivable
func (h *ReceivableHandler) Settle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
		Method string          `json:"method" binding:"required"`
		Note   string          `json:"note"`
		Date   *time.Time      `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.SettlementInput{
		ReceivableID: c.Param("id"),
		Amount:       req.Amount,
		Method:       req.Method,
		Note:         req.Note,
		Actor:        *userID,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	receivable, err := h.receivableService.RegisterSettlement(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement registered successfully", receivable)
}

// Aging handles the aging summary of open receivables
func (h *ReceivableHandler) Aging(c *gin.Context) {
	buckets, err := h.receivableService.AgingSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Aging summary retrieved successfully", buckets)
}
