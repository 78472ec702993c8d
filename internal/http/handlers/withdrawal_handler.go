package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// WithdrawalHandler serves visitor withdrawal requests.
type WithdrawalHandler struct {
	svc *service.RewardsService
}

func NewWithdrawalHandler(svc *service.RewardsService) *WithdrawalHandler {
	return &WithdrawalHandler{svc: svc}
}

// Create POST /withdrawals
func (h *WithdrawalHandler) Create(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		PointsAmount   int    `json:"points_amount" binding:"required,gt=0"`
		PaymentMethod  string `json:"payment_method" binding:"required"`
		PaymentDetails string `json:"payment_details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	w, err := h.svc.RequestWithdrawal(c.Request.Context(), visitorID, req.PointsAmount, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		var validationErr *service.ValidationError
		var insufficientErr *repository.InsufficientPointsError
		switch {
		case errors.As(err, &validationErr):
			common.RespondBadRequest(c, validationErr.Error())
		case errors.As(err, &insufficientErr):
			common.RespondError(c, http.StatusUnprocessableEntity, insufficientErr.Error())
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListMine GET /withdrawals
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	withdrawals, err := h.svc.ListWithdrawals(c.Request.Context(), visitorID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}
