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

// NotificationAdminHandler 通知管理处理器
type NotificationAdminHandler struct {
	notificationService *service.NotificationService
	logger              *logger.Logger
}

// NewNotificationAdminHandler 创建通知管理处理器
func NewNotificationAdminHandler(notificationService *service.NotificationService, logger *logger.Logger) *NotificationAdminHandler {
	return &NotificationAdminHandler{notificationService: notificationService, logger: logger}
}

func (h *NotificationAdminHandler) ListNotifications(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	items, total, err := h.notificationService.List(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgNotificationsFetchFailed)
		return
	}
	handler.RespondList(c, items, total)
}

func (h *NotificationAdminHandler) GetNotification(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.notificationService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgNotificationsFetchFailed)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationAdminHandler) CreateNotification(c *gin.Context) {
	var req types.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationAdminHandler) UpdateNotification(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	n, err := h.notificationService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationAdminHandler) DeleteNotification(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendNotification 标记为已发送并异步投递邮件
func (h *NotificationAdminHandler) SendNotification(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.notificationService.Send(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgNotificationSendFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notification": n})
}
