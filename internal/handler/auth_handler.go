package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"popularvideogames/backend/internal/auth"
	"popularvideogames/backend/pkg/jwt"
)

// TokenInput defines the structure for requesting an admin token.
type TokenInput struct {
	Key string `json:"key" binding:"required" example:"admin-key"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in" example:"43200"`
}

// IssueToken godoc
// @Summary      Exchange the admin key for a token
// @Description  Verifies the admin key against the configured bcrypt hash and returns a signed JWT with the admin role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body TokenInput true "Admin key"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse "Invalid admin key"
// @Router       /auth/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var input TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !auth.CheckAdminKey(h.opts.AdminKeyHash, input.Key) {
		h.log.Warn("Rejected admin key", "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
		return
	}

	token, err := jwt.GenerateToken("admin", jwt.RoleAdmin, h.opts.JWTSecret, h.opts.TokenTTL)
	if err != nil {
		h.log.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresIn: int64(h.opts.TokenTTL.Seconds())})
}
