package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/models"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
)

// DonationHandler serves direct contributions to the fund.
type DonationHandler struct {
	repo *repository.DonationRepository
}

func NewDonationHandler(repo *repository.DonationRepository) *DonationHandler {
	return &DonationHandler{repo: repo}
}

// Create POST /donations
func (h *DonationHandler) Create(c *gin.Context) {
	var req struct {
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		DonorName   *string `json:"donor_name"`
		Message     *string `json:"message"`
		IsAnonymous bool    `json:"is_anonymous"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	donorName := req.DonorName
	if req.IsAnonymous {
		// The name never reaches the database for anonymous donors.
		donorName = nil
	}

	donation, err := h.repo.Create(c.Request.Context(), &models.Donation{
		Amount:      req.Amount,
		DonorName:   donorName,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, donation)
}

// ListRecent GET /donations/recent
func (h *DonationHandler) ListRecent(c *gin.Context) {
	limit := common.ParseIntQuery(c, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	donations, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, donations)
}
