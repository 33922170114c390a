package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/myrroearl/atam-sub002/internal/middleware"
	"github.com/myrroearl/atam-sub002/internal/models"
)

// currentClaims extracts the authenticated identity placed by the JWT
// middleware. Routes behind the middleware always have it; the nil return
// covers misconfigured wiring.
func currentClaims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
