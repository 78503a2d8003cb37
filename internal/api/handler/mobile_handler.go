package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/constants"
	"kazanion/internal/repository"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// MobileHandler 移动端接口
type MobileHandler struct {
	surveyService *service.SurveyService
	storyService  *service.StoryService
	userService   *service.UserService
	logger        *logger.Logger
}

// NewMobileHandler 创建移动端处理器
func NewMobileHandler(surveyService *service.SurveyService, storyService *service.StoryService, userService *service.UserService, logger *logger.Logger) *MobileHandler {
	return &MobileHandler{
		surveyService: surveyService,
		storyService:  storyService,
		userService:   userService,
		logger:        logger,
	}
}

// Surveys 进行中的问卷
func (h *MobileHandler) Surveys(c *gin.Context) {
	surveys, err := h.surveyService.ListActive(c.Request.Context(), repository.Page{Limit: MaxLimit})
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgSurveysFetchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "surveys": surveys})
}

// CompleteSurvey 提交问卷并发放奖励
func (h *MobileHandler) CompleteSurvey(c *gin.Context) {
	surveyID, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var req types.CompleteSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, constants.MsgUserIDRequired)
		return
	}

	user, err := h.surveyService.Complete(c.Request.Context(), surveyID, req)
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": constants.MsgSurveyCompleted,
		"user":    user,
	})
}

// Profile 用户资料
func (h *MobileHandler) Profile(c *gin.Context) {
	userID, ok := ParseID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgUserProfileFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Stories 当前可见的故事
func (h *MobileHandler) Stories(c *gin.Context) {
	stories, err := h.storyService.ListVisible(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgStoriesFetchFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stories": stories})
}

// ViewStory 记录一次浏览
func (h *MobileHandler) ViewStory(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.storyService.View(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, err, constants.MsgStoryViewFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
