package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
)

// respondError maps domain errors onto HTTP statuses. Validation errors
// keep their machine code so clients can branch without parsing text.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": ve.Code, "message": ve.Message})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "already exists"})
	default:
		logger.Printf("http: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
