package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kazanion/internal/api/handler"
	"kazanion/internal/constants"
	"kazanion/internal/repository"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// ProductAdminHandler 商品管理处理器
type ProductAdminHandler struct {
	productService *service.ProductService
	logger         *logger.Logger
}

// NewProductAdminHandler 创建商品管理处理器
func NewProductAdminHandler(productService *service.ProductService, logger *logger.Logger) *ProductAdminHandler {
	return &ProductAdminHandler{productService: productService, logger: logger}
}

// ListProducts 商品列表，支持 storeId、category、active 过滤
func (h *ProductAdminHandler) ListProducts(c *gin.Context) {
	page, ok := handler.ParsePage(c)
	if !ok {
		return
	}

	filter := repository.ProductFilter{
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") == "true",
	}
	if raw := c.Query("storeId"); raw != "" {
		storeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handler.BadRequest(c, constants.MsgInvalidID)
			return
		}
		filter.StoreID = &storeID
	}

	products, total, err := h.productService.List(c.Request.Context(), filter, page)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgProductsFetchFailed)
		return
	}
	handler.RespondList(c, products, total)
}

// GetProduct 商品详情
func (h *ProductAdminHandler) GetProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgProductsFetchFailed)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct 创建商品
func (h *ProductAdminHandler) CreateProduct(c *gin.Context) {
	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct 更新商品，variants 整体替换
func (h *ProductAdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgSaveFailed)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct 删除商品
func (h *ProductAdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err, constants.MsgDeleteFailed)
		return
	}
	c.Status(http.StatusNoContent)
}
