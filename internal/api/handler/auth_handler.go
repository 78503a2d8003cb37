package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/constants"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// AuthHandler 登录注册处理器
type AuthHandler struct {
	authService *service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler 创建登录注册处理器
func NewAuthHandler(authService *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// AdminLogin 管理员登录
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, constants.MsgLoginFieldsRequired)
		return
	}

	session, err := h.authService.AdminLogin(c.Request.Context(), req)
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   constants.MsgLoginSuccess,
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"admin":     session.Admin,
	})
}

// Register App用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": constants.MsgRegisterSuccess,
		"user":    user,
	})
}

// Login App用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, constants.MsgLoginFieldsRequired)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": constants.MsgLoginSuccess,
		"user":    user,
	})
}
