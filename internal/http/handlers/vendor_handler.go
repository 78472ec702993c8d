package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/validation"
)

// VendorHandler serves the public vendor directory and self-registration.
// Vendor records are plain CRUD, handlers talk to the repository directly.
type VendorHandler struct {
	repo *repository.VendorRepository
}

func NewVendorHandler(repo *repository.VendorRepository) *VendorHandler {
	return &VendorHandler{repo: repo}
}

// ListApproved GET /vendors
func (h *VendorHandler) ListApproved(c *gin.Context) {
	vendors, err := h.repo.ListApproved(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// Register POST /vendors
//
// New vendors start out pending and only appear publicly after an
// administrator approves them.
func (h *VendorHandler) Register(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		Email       *string `json:"email"`
		Website     *string `json:"website"`
		LogoURL     *string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if err := validation.ValidateVendorName(name); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	vendor, err := h.repo.Create(c.Request.Context(), &models.Vendor{
		Name:        name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		Status:      models.VendorStatusPending,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}
