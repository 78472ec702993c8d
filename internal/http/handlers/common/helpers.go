package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenstep-az/ecorewards-backend/internal/http/middleware"
)

var (
	// ErrNoVisitor is returned when the visitor cookie middleware did not run.
	ErrNoVisitor = errors.New("visitor identity missing from context")

	// ErrNoAdmin is returned when admin auth claims are missing from context.
	ErrNoAdmin = errors.New("admin identity missing from context")

	// ErrInvalidUUID is returned when UUID parsing fails.
	ErrInvalidUUID = errors.New("malformed UUID")
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VisitorID extracts the anonymous visitor identifier from the context.
func VisitorID(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextVisitorIDKey)
	if !exists {
		return "", ErrNoVisitor
	}

	visitorID, ok := raw.(string)
	if !ok || visitorID == "" {
		return "", ErrNoVisitor
	}

	return visitorID, nil
}

// CurrentAdminID extracts the authenticated admin's ID from the context.
func CurrentAdminID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextAdminIDKey)
	if !exists {
		return uuid.Nil, ErrNoAdmin
	}

	adminID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoAdmin
	}

	return adminID, nil
}

// CurrentAdminRole extracts the authenticated admin's role from the context.
func CurrentAdminRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", ErrNoAdmin
	}

	role, ok := raw.(string)
	if !ok {
		return "", ErrNoAdmin
	}

	return role, nil
}

// ParseUUIDParam parses a UUID from a URL parameter.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("parameter %s is missing", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// RespondError sends a standardized error response.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// RespondBadRequest sends a 400 Bad Request response.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "malformed request"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// RespondUnauthorized sends a 401 Unauthorized response.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authorization required"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondNotFound sends a 404 Not Found response.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondInternalError sends a 500 Internal Server Error response.
func RespondInternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	RespondError(c, http.StatusInternalServerError, message)
}

// ParseIntQuery safely reads an integer query parameter with a fallback.
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
