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

// MapTaskAdminHandler 地图任务管理处理器
type MapTaskAdminHandler struct {
	mapTaskService *service.MapTaskService
	logger         *logger.Logger
}

// NewMapTaskAdminHandler 创建地图任务管理处理器
func NewMapTaskAdminHandler(mapTaskService *service.MapTaskService, logger *logger.Logger) *MapTaskAdminHandler {
	return &MapTaskAdminHandler{mapTaskService: mapTaskService, logger: logger}
}

// ListMapTasks 地图任务列表，可按 status 过滤
func (h *MapTaskAdminHandler) ListMapTasks(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	tasks, total, err := h.mapTaskService.List(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgMapTasksFetchFailed)
		return
	}
	handler.RespondList(c, tasks, total)
}

func (h *MapTaskAdminHandler) GetMapTask(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	task, err := h.mapTaskService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgMapTasksFetchFailed)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *MapTaskAdminHandler) CreateMapTask(c *gin.Context) {
	var req types.MapTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	task, err := h.mapTaskService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *MapTaskAdminHandler) UpdateMapTask(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateMapTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	task, err := h.mapTaskService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *MapTaskAdminHandler) DeleteMapTask(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.mapTaskService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
