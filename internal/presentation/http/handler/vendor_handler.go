package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/dto/response"
)

// VendorHandler handles vendor HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// List handles listing vendors
func (h *VendorHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	vendors, err := h.vendorService.ListVendors(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendors retrieved successfully", vendors)
}

// Create handles registering a new vendor
func (h *VendorHandler) Create(c *gin.Context) {
	var req struct {
		Code                 string          `json:"code" binding:"required"`
		Name                 string          `json:"name" binding:"required"`
		CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), &service.CreateVendorInput{
		Code:                 req.Code,
		Name:                 req.Name,
		CommissionPercentage: req.CommissionPercentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vendor created successfully", vendor)
}

// Update handles changing a vendor's name, rate or active flag
func (h *VendorHandler) Update(c *gin.Context) {
	var req struct {
		Name                 *string          `json:"name"`
		CommissionPercentage *decimal.Decimal `json:"commission_percentage"`
		Active               *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), &service.UpdateVendorInput{
		Code:                 c.Param("code"),
		Name:                 req.Name,
		CommissionPercentage: req.CommissionPercentage,
		Active:               req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor updated successfully", vendor)
}
