package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

type AuthHandler struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewAuthHandler(auth Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login handles POST /users/login/simple.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bind(c, h.logger, &req) {
		return
	}
	h.logger.Info("Login request received",
		zap.String("username", req.Username),
		zap.String("client_ip", c.ClientIP()),
	)

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("username", req.Username), zap.Error(err))
		fail(c, h.logger, "User", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.CurrentUser(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		fail(c, h.logger, "User", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
