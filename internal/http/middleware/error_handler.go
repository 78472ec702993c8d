package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/greenstep-az/ecorewards-backend/internal/logger"
	"github.com/greenstep-az/ecorewards-backend/internal/repository"
	"github.com/greenstep-az/ecorewards-backend/internal/service"
)

// ErrorHandler maps errors pushed to the gin context onto HTTP responses.
// Internal errors are masked with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		statusCode := http.StatusInternalServerError
		message := "internal server error"

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}

		var validationErr *service.ValidationError
		var insufficientErr *repository.InsufficientPointsError

		switch {
		case errors.Is(err.Err, repository.ErrReceiptNotFound):
			statusCode = http.StatusNotFound
			message = "receipt not found"
		case errors.Is(err.Err, repository.ErrWithdrawalNotFound):
			statusCode = http.StatusNotFound
			message = "withdrawal request not found"
		case errors.Is(err.Err, repository.ErrVendorNotFound):
			statusCode = http.StatusNotFound
			message = "vendor not found"
		case errors.Is(err.Err, repository.ErrAdminNotFound):
			statusCode = http.StatusNotFound
			message = "admin user not found"
		case errors.As(err.Err, &validationErr):
			statusCode = http.StatusBadRequest
			message = validationErr.Error()
		case errors.As(err.Err, &insufficientErr):
			statusCode = http.StatusUnprocessableEntity
			message = insufficientErr.Error()
		case errors.Is(err.Err, service.ErrInvalidCredentials):
			statusCode = http.StatusUnauthorized
			message = service.ErrInvalidCredentials.Error()
		default:
			if msg := err.Error(); msg != "" && !containsInternalKeywords(msg) {
				message = msg
				if containsFold(msg, "invalid") || containsFold(msg, "malformed") {
					statusCode = http.StatusBadRequest
				}
			}
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}

// containsInternalKeywords reports whether the message leaks infrastructure
// detail that should not reach clients.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if containsFold(s, keyword) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
