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

// StoreAdminHandler 门店管理处理器
type StoreAdminHandler struct {
	storeService *service.StoreService
	logger       *logger.Logger
}

// NewStoreAdminHandler 创建门店管理处理器
func NewStoreAdminHandler(storeService *service.StoreService, logger *logger.Logger) *StoreAdminHandler {
	return &StoreAdminHandler{storeService: storeService, logger: logger}
}

func (h *StoreAdminHandler) ListStores(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	stores, total, err := h.storeService.List(c.Request.Context(), page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgStoresFetchFailed)
		return
	}
	handler.RespondList(c, stores, total)
}

func (h *StoreAdminHandler) GetStore(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgStoresFetchFailed)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreAdminHandler) CreateStore(c *gin.Context) {
	var req types.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *StoreAdminHandler) UpdateStore(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore 删除门店，所属商品的 storeId 置空
func (h *StoreAdminHandler) DeleteStore(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
