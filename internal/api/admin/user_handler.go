package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/api/handler"
	"kazanion/internal/constants"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// UserAdminHandler App用户管理处理器
type UserAdminHandler struct {
	userService *service.UserService
	authService *service.AuthService
	logger      *logger.Logger
}

// NewUserAdminHandler 创建用户管理处理器实例
func NewUserAdminHandler(userService *service.UserService, authService *service.AuthService, logger *logger.Logger) *UserAdminHandler {
	return &UserAdminHandler{userService: userService, authService: authService, logger: logger}
}

// ListUsers 获取用户列表
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgUsersFetchFailed)
		return
	}
	handler.RespondList(c, users, total)
}

// GetUser 获取用户详情
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgUserFetchFailed)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser 后台代为注册用户，规则与App注册相同
func (h *UserAdminHandler) CreateUser(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser 更新用户信息
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgUserUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser 删除用户
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgUserDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}

// UserHistory 用户的问卷完成记录
func (h *UserAdminHandler) UserHistory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	history, err := h.userService.History(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgUserHistoryFailed)
		return
	}
	c.JSON(http.StatusOK, history)
}
