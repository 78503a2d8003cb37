package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/api/handler"
	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/middleware"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// AdminUserHandler 管理员账号处理器
type AdminUserHandler struct {
	adminUserService *service.AdminUserService
	logger           *logger.Logger
}

// NewAdminUserHandler 创建管理员账号处理器
func NewAdminUserHandler(adminUserService *service.AdminUserService, logger *logger.Logger) *AdminUserHandler {
	return &AdminUserHandler{adminUserService: adminUserService, logger: logger}
}

func (h *AdminUserHandler) ListAdmins(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	admins, total, err := h.adminUserService.List(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAdminsFetchFailed)
		return
	}
	handler.RespondList(c, admins, total)
}

func (h *AdminUserHandler) GetAdmin(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminUserService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAdminsFetchFailed)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AdminUserHandler) CreateAdmin(c *gin.Context) {
	var req types.AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	admin, err := h.adminUserService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (h *AdminUserHandler) UpdateAdmin(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	admin, err := h.adminUserService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AdminUserHandler) DeleteAdmin(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.adminUserService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}

// CurrentAdmin 返回令牌对应的管理员，账号已删除或停用时视为未登录
func (h *AdminUserHandler) CurrentAdmin(c *gin.Context) {
	admin, err := h.adminUserService.Get(c.Request.Context(), c.GetInt64(middleware.ContextAdminID))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"message": constants.MsgUnauthorized})
			return
		}
		handler.RespondError(c, h.logger, err, constants.MsgAdminsFetchFailed)
		return
	}
	if !admin.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"message": constants.MsgUnauthorized})
		return
	}
	c.JSON(http.StatusOK, admin)
}

// Logout 令牌无服务端状态，由客户端丢弃
func (h *AdminUserHandler) Logout(c *gin.Context) {
	h.logger.Info("管理员退出登录", "admin_id", c.GetInt64(middleware.ContextAdminID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": constants.MsgLogoutSuccess})
}
