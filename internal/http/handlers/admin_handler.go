package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
	"github.com/greenstep-az/ecorewards-backend/internal/validation"
)

// AdminHandler serves the review dashboard: receipt, withdrawal and vendor
// moderation plus fund allocation entry.
type AdminHandler struct {
	receipts *service.ReceiptService
	rewards  *service.RewardsService
	vendors  *repository.VendorRepository
	funds    *repository.FundRepository
}

func NewAdminHandler(receipts *service.ReceiptService, rewards *service.RewardsService, vendors *repository.VendorRepository, funds *repository.FundRepository) *AdminHandler {
	return &AdminHandler{receipts: receipts, rewards: rewards, vendors: vendors, funds: funds}
}

type statusUpdateRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// ListReceipts GET /admin/receipts
func (h *AdminHandler) ListReceipts(c *gin.Context) {
	receipts, err := h.receipts.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// UpdateReceiptStatus PATCH /admin/receipts/:id/status
func (h *AdminHandler) UpdateReceiptStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.SetStatus(c.Request.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		h.respondStatusError(c, err, repository.ErrReceiptNotFound, "receipt not found")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ListWithdrawals GET /admin/withdrawals
func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	withdrawals, err := h.rewards.ListAllWithdrawals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// UpdateWithdrawalStatus PATCH /admin/withdrawals/:id/status
func (h *AdminHandler) UpdateWithdrawalStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	w, err := h.rewards.SetWithdrawalStatus(c.Request.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		h.respondStatusError(c, err, repository.ErrWithdrawalNotFound, "withdrawal request not found")
		return
	}
	c.JSON(http.StatusOK, w)
}

// ListVendors GET /admin/vendors
func (h *AdminHandler) ListVendors(c *gin.Context) {
	vendors, err := h.vendors.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// UpdateVendorStatus PATCH /admin/vendors/:id/status
func (h *AdminHandler) UpdateVendorStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if !models.ValidVendorStatus(req.Status) {
		common.RespondBadRequest(c, "unknown vendor status "+req.Status)
		return
	}

	vendor, err := h.vendors.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			common.RespondNotFound(c, "vendor not found")
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// CreateAllocation POST /admin/fund/allocations
func (h *AdminHandler) CreateAllocation(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		Category    string  `json:"category" binding:"required"`
		ImageURL    *string `json:"image_url"`
		Date        string  `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidatePurchaseDate(req.Date); err != nil {
		common.RespondBadRequest(c, "date must use the YYYY-MM-DD format")
		return
	}

	allocation, err := h.funds.CreateAllocation(c.Request.Context(), &models.FundAllocation{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		ImageURL:    req.ImageURL,
		Date:        req.Date,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, allocation)
}

// respondStatusError maps service errors from status updates onto responses.
func (h *AdminHandler) respondStatusError(c *gin.Context, err, notFound error, notFoundMsg string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, notFound):
		common.RespondNotFound(c, notFoundMsg)
	case errors.As(err, &validationErr):
		common.RespondBadRequest(c, validationErr.Error())
	default:
		c.Error(err)
	}
}
