package rest

import (
	"net/http"
	"time"

	"policyAdvisor/pkg/logger"
	"policyAdvisor/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const adminTokenTTL = 12 * time.Hour

type AuthHandler struct {
	validator         *validator.Validate
	adminUsername     string
	adminPasswordHash string
}

func NewAuthHandler(adminUsername, adminPasswordHash string) *AuthHandler {
	return &AuthHandler{
		validator:         validator.New(),
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges the admin credentials for a JWT guarding the
// mutation and dashboard routes.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate admin login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Username != h.adminUsername || !utils.CheckPassword(h.adminPasswordHash, req.Password) {
		logger.Warn("admin login rejected", "username", req.Username)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
	}

	token, err := utils.GenerateJWT(req.Username, "admin", adminTokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
}
