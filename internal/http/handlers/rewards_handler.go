package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// RewardsHandler serves the derived point balances.
type RewardsHandler struct {
	svc *service.RewardsService
}

func NewRewardsHandler(svc *service.RewardsService) *RewardsHandler {
	return &RewardsHandler{svc: svc}
}

// GetRewards GET /rewards
func (h *RewardsHandler) GetRewards(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	rewards, err := h.svc.GetUserRewards(c.Request.Context(), visitorID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}
