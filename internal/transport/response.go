package transport

import (
	"errors"
	"net/http"

	"github.com/KadakWNL/crowd-connect/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinel errors onto HTTP statuses. Anything not in
// the taxonomy is a store fault and stays opaque to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrEventNotFound), errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotHost), errors.Is(err, entity.ErrNotOwner), errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrEventDatePast):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrWrongCredentials), errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
