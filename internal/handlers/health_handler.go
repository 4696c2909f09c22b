package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/database"
)

// HealthHandler reports service liveness and backend state.
type HealthHandler struct {
	manager *database.Manager
}

func NewHealthHandler(manager *database.Manager) *HealthHandler {
	return &HealthHandler{manager: manager}
}

// Health handles GET /health. The service is healthy even in degraded
// mode; the database state is informational.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "storefront-backend",
		"database": string(h.manager.State()),
	})
}
