// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// GuestTokenIssuer issues guest tokens
type GuestTokenIssuer interface {
	GenerateGuestToken() (*auth.GuestToken, error)
}

// AuthHandler handles guest authentication
type AuthHandler struct {
	issuer GuestTokenIssuer
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer GuestTokenIssuer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		logger: logger,
	}
}

// GuestToken handles POST /auth/guest
func (h *AuthHandler) GuestToken(c *gin.Context) {
	token, err := h.issuer.GenerateGuestToken()
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to issue guest token", err)
		return
	}

	h.logger.WithField("user_id", token.UserID).Info("Guest token issued")
	c.JSON(http.StatusOK, token)
}
