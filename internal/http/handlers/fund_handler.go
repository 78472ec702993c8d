package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

// FundHandler serves the public transparency page.
type FundHandler struct {
	donations *repository.DonationRepository
	funds     *repository.FundRepository
}

func NewFundHandler(donations *repository.DonationRepository, funds *repository.FundRepository) *FundHandler {
	return &FundHandler{donations: donations, funds: funds}
}

// GetStats GET /fund/stats
func (h *FundHandler) GetStats(c *gin.Context) {
	donations, err := h.donations.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	allocations, err := h.funds.ListAllocations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.DeriveFundStats(donations, allocations))
}

// ListAllocations GET /fund/allocations
func (h *FundHandler) ListAllocations(c *gin.Context) {
	allocations, err := h.funds.ListAllocations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, allocations)
}
