package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// SeedHandler fills the database with demo data. Wired only in development.
type SeedHandler struct {
	svc *service.SeedService
}

func NewSeedHandler(svc *service.SeedService) *SeedHandler {
	return &SeedHandler{svc: svc}
}

// Seed handles POST /seed and GET /seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	visitorID, err := common.VisitorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.svc.Seed(c.Request.Context(), visitorID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "demo data created"})
}
