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

// StoryAdminHandler 故事管理处理器
type StoryAdminHandler struct {
	storyService *service.StoryService
	logger       *logger.Logger
}

// NewStoryAdminHandler 创建故事管理处理器
func NewStoryAdminHandler(storyService *service.StoryService, logger *logger.Logger) *StoryAdminHandler {
	return &StoryAdminHandler{storyService: storyService, logger: logger}
}

// ListStories 故事列表，包含已过期的
func (h *StoryAdminHandler) ListStories(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	stories, total, err := h.storyService.List(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgStoriesFetchFailed)
		return
	}
	handler.RespondList(c, stories, total)
}

// GetStory 故事详情
func (h *StoryAdminHandler) GetStory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	story, err := h.storyService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgStoriesFetchFailed)
		return
	}
	c.JSON(http.StatusOK, story)
}

// CreateStory 创建故事
func (h *StoryAdminHandler) CreateStory(c *gin.Context) {
	var req types.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	story, err := h.storyService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, story)
}

// UpdateStory 更新故事
func (h *StoryAdminHandler) UpdateStory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	story, err := h.storyService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, story)
}

// DeleteStory 删除故事
func (h *StoryAdminHandler) DeleteStory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.storyService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
