// Package handlers exposes the storefront HTTP API. Handlers map
// store results onto status codes: nil/false from a store is 404, a
// duplicate is 409, validation failures are 400 and database
// connectivity failures in production surface as 503.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/models"
	"storefront-backend/internal/store"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message},
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.SuccessResponse{Success: true, Data: data, Message: message})
}

// respondStoreError maps store-level failures. Anything that reaches
// here with a non-nil error is a production connectivity failure or a
// duplicate.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusConflict, "DUPLICATE", err.Error())
		return
	}
	respondError(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", err.Error())
}

func respondNotFound(c *gin.Context, what string) {
	respondError(c, http.StatusNotFound, "NOT_FOUND", what+" not found")
}
