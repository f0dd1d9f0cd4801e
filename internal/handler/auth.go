package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akarev/activity-signup/internal/utils"
)

// AuthHandler exchanges the chat gateway's shared secret for short-lived
// participant access tokens. The gateway is the only direct client of this
// service; participants never authenticate here themselves. The secret is
// compared against a bcrypt hash supplied via configuration.
type AuthHandler struct {
	GatewaySecretHash string // bcrypt hash of the gateway shared secret
	JWTSecret         string // HS256 signing secret
	AccessTTLMin      int    // token lifetime in minutes
}

// NewAuthHandler constructs an AuthHandler from configuration values.
func NewAuthHandler(gatewaySecretHash, jwtSecret string, ttlMin int) *AuthHandler {
	return &AuthHandler{
		GatewaySecretHash: gatewaySecretHash,
		JWTSecret:         jwtSecret,
		AccessTTLMin:      ttlMin,
	}
}

// tokenRequest is the POST /v1/auth/token payload.
type tokenRequest struct {
	GatewaySecret string `json:"gateway_secret" validate:"required"`
	UserID        uint64 `json:"user_id" validate:"required"`
}

// IssueToken handles POST /v1/auth/token. On a valid gateway secret it
// returns an access token whose subject is the given participant id.
// A wrong secret yields 401 with no further detail.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var body tokenRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if !utils.VerifySecret(h.GatewaySecretHash, body.GatewaySecret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, body.UserID, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
