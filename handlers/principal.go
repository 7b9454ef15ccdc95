package handlers

import (
	"edusync_backend/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentPrincipal reads the authenticated user set by the auth
// middleware. Routes using it must sit behind AuthMiddleware.
func currentPrincipal(c *gin.Context) policy.Principal {
	userID, _ := c.MustGet("userID").(uuid.UUID)
	role, _ := policy.ParseRole(c.GetString("userRole"))
	return policy.Principal{ID: userID, Role: role}
}
