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

// SurveyAdminHandler 问卷管理处理器
type SurveyAdminHandler struct {
	surveyService *service.SurveyService
	logger        *logger.Logger
}

// NewSurveyAdminHandler 创建问卷管理处理器
func NewSurveyAdminHandler(surveyService *service.SurveyService, logger *logger.Logger) *SurveyAdminHandler {
	return &SurveyAdminHandler{surveyService: surveyService, logger: logger}
}

// ListSurveys 问卷列表，可按 status 过滤
func (h *SurveyAdminHandler) ListSurveys(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	surveys, total, err := h.surveyService.List(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSurveysFetchFailed)
		return
	}
	handler.RespondList(c, surveys, total)
}

// GetSurvey 问卷详情
func (h *SurveyAdminHandler) GetSurvey(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSurveysFetchFailed)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// CreateSurvey 创建问卷
func (h *SurveyAdminHandler) CreateSurvey(c *gin.Context) {
	var req types.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// UpdateSurvey 更新问卷
func (h *SurveyAdminHandler) UpdateSurvey(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// DeleteSurvey 删除问卷
func (h *SurveyAdminHandler) DeleteSurvey(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.surveyService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
