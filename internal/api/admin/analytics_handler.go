package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kazanion/internal/api/handler"
	"kazanion/internal/constants"
	"kazanion/internal/service"
	"kazanion/pkg/logger"
)

const (
	dateLayout         = "2006-01-02"
	defaultRangeInDays = 30
)

// AnalyticsAdminHandler 仪表盘和统计处理器
type AnalyticsAdminHandler struct {
	analyticsService  *service.AnalyticsService
	redemptionService *service.RedemptionService
	logger            *logger.Logger
}

// NewAnalyticsAdminHandler 创建统计处理器
func NewAnalyticsAdminHandler(analyticsService *service.AnalyticsService, redemptionService *service.RedemptionService, logger *logger.Logger) *AnalyticsAdminHandler {
	return &AnalyticsAdminHandler{
		analyticsService:  analyticsService,
		redemptionService: redemptionService,
		logger:            logger,
	}
}

// DashboardStats 仪表盘汇总
func (h *AnalyticsAdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgStatsFetchFailed)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListAnalytics 每日快照，startDate/endDate 缺省为最近30天
func (h *AnalyticsAdminHandler) ListAnalytics(c *gin.Context) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -defaultRangeInDays)

	var err error
	if raw := c.Query("endDate"); raw != "" {
		if end, err = time.Parse(dateLayout, raw); err != nil {
			handler.BadRequest(c, constants.MsgInvalidDateRange)
			return
		}
		start = end.AddDate(0, 0, -defaultRangeInDays)
	}
	if raw := c.Query("startDate"); raw != "" {
		if start, err = time.Parse(dateLayout, raw); err != nil {
			handler.BadRequest(c, constants.MsgInvalidDateRange)
			return
		}
	}
	if start.After(end) {
		handler.BadRequest(c, constants.MsgInvalidDateRange)
		return
	}

	items, err := h.analyticsService.Range(c.Request.Context(), start, end)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAnalyticsFetchFailed)
		return
	}
	handler.RespondList(c, items, int64(len(items)))
}

// TakeSnapshot 立即写入今天的快照
func (h *AnalyticsAdminHandler) TakeSnapshot(c *gin.Context) {
	snap, err := h.analyticsService.TakeSnapshot(c.Request.Context(), time.Now())
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAnalyticsFetchFailed)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// SurveyAnalytics 问卷单题统计
func (h *AnalyticsAdminHandler) SurveyAnalytics(c *gin.Context) {
	surveyID, ok := handler.ParseID(c, "surveyId")
	if !ok {
		return
	}

	items, err := h.analyticsService.SurveyAnalytics(c.Request.Context(), surveyID)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAnalyticsFetchFailed)
		return
	}
	handler.RespondList(c, items, int64(len(items)))
}

// RefreshSurveyAnalytics 重新计算问卷统计
func (h *AnalyticsAdminHandler) RefreshSurveyAnalytics(c *gin.Context) {
	surveyID, ok := handler.ParseID(c, "surveyId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.analyticsService.RefreshSurveyAnalytics(ctx, surveyID); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAnalyticsFetchFailed)
		return
	}
	items, err := h.analyticsService.SurveyAnalytics(ctx, surveyID)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgAnalyticsFetchFailed)
		return
	}
	handler.RespondList(c, items, int64(len(items)))
}

// ListRedemptions 兑换记录，可按 userId 过滤
func (h *AnalyticsAdminHandler) ListRedemptions(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	var userID *int64
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handler.BadRequest(c, constants.MsgInvalidID)
			return
		}
		userID = &id
	}

	items, total, err := h.redemptionService.List(c.Request.Context(), userID, page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgRedemptionsFetchFailed)
		return
	}
	handler.RespondList(c, items, total)
}
