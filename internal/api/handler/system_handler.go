package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/constants"
	"kazanion/internal/service"
	"kazanion/pkg/logger"
)

// SystemHandler 系统状态和公开排行榜
type SystemHandler struct {
	systemService    *service.SystemService
	analyticsService *service.AnalyticsService
	logger           *logger.Logger
}

// NewSystemHandler 创建系统状态处理器实例
func NewSystemHandler(systemService *service.SystemService, analyticsService *service.AnalyticsService, logger *logger.Logger) *SystemHandler {
	return &SystemHandler{
		systemService:    systemService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Health 健康检查，数据库不可用时返回503
func (h *SystemHandler) Health(c *gin.Context) {
	status := h.systemService.Health(c.Request.Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Leaderboard 积分排行榜前20名
func (h *SystemHandler) Leaderboard(c *gin.Context) {
	entries, err := h.analyticsService.Leaderboard(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgLeaderboardFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
