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

// SettingAdminHandler 系统设置处理器
type SettingAdminHandler struct {
	settingService *service.SettingService
	logger         *logger.Logger
}

// NewSettingAdminHandler 创建系统设置处理器
func NewSettingAdminHandler(settingService *service.SettingService, logger *logger.Logger) *SettingAdminHandler {
	return &SettingAdminHandler{settingService: settingService, logger: logger}
}

// ListSettings 全部设置
func (h *SettingAdminHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSettingsFetchFailed)
		return
	}
	handler.RespondList(c, settings, int64(len(settings)))
}

// UpdateSettings 按key批量写入
func (h *SettingAdminHandler) UpdateSettings(c *gin.Context) {
	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	settings, err := h.settingService.Upsert(c.Request.Context(), req.Settings)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	handler.RespondList(c, settings, int64(len(settings)))
}

// DeleteSetting 删除设置
func (h *SettingAdminHandler) DeleteSetting(c *gin.Context) {
	if err := h.settingService.Delete(c.Request.Context(), c.Param("key")); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
