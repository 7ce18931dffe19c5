package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// DivergenceHandler handles divergence listing and resolution HTTP requests
type DivergenceHandler struct {
	divergenceService *service.DivergenceService
}

// NewDivergenceHandler creates a new divergence handler
func NewDivergenceHandler(divergenceService *service.DivergenceService) *DivergenceHandler {
	return &DivergenceHandler{divergenceService: divergenceService}
}

// List handles listing a period's fiscal records with divergence filters
func (h *DivergenceHandler) List(c *gin.Context) {
	params := &repository.FiscalRecordFilterParams{
		Pagination: parsePagination(c),
		Period:     c.Param("period"),
		Search:     c.Query("search"),
		Vendor:     c.Query("vendor"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.DivergenceStatus(statusStr)
		params.DivergenceStatus = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		divergenceType := enum.DivergenceType(typeStr)
		if !divergenceType.IsValid() {
			response.BadRequest(c, "Unknown divergence type")
			return
		}
		params.DivergenceType = &divergenceType
	}

	result, err := h.divergenceService.ListDivergences(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Divergences retrieved successfully", result)
}

// Resolve handles applying a resolution action to one divergent record
func (h *DivergenceHandler) Resolve(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Action     string `json:"action" binding:"required"`
		VendorCode string `json:"vendor_code"`
		Reference  string `json:"reference"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.divergenceService.Resolve(c.Request.Context(), &service.ResolveInput{
		Period: c.Param("period"),
		Number: c.Param("number"),
		Action: enum.ResolutionAction(req.Action),
		Payload: service.ResolutionPayload{
			VendorCode: req.VendorCode,
			Reference:  req.Reference,
			Comment:    req.Comment,
		},
		Actor: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Divergence resolved successfully", record)
}

// Resolutions handles listing the resolution audit trail for one record
func (h *DivergenceHandler) Resolutions(c *gin.Context) {
	records, err := h.divergenceService.ListResolutions(c.Request.Context(), c.Param("period"), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Resolutions retrieved successfully", records)
}
