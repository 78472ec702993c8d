package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenstep-az/ecorewards-backend/internal/http/handlers/common"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// AuthHandler serves administrator authentication.
type AuthHandler struct {
	svc    *service.AuthService
	admins *repository.AdminRepository
}

func NewAuthHandler(svc *service.AuthService, admins *repository.AdminRepository) *AuthHandler {
	return &AuthHandler{svc: svc, admins: admins}
}

// Login POST /admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			common.RespondUnauthorized(c, err.Error())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"admin":      result.Admin,
	})
}

// Setup POST /admin/auth/setup
//
// Creates the first superadmin account. Refused once any admin exists.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	admin, err := h.svc.Setup(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSetupDone) {
			common.RespondError(c, http.StatusConflict, err.Error())
			return
		}
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			common.RespondBadRequest(c, validationErr.Error())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// Session GET /admin/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	adminID, err := common.CurrentAdminID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	admin, err := h.admins.GetByID(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			common.RespondUnauthorized(c, "session no longer valid")
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, admin)
}
