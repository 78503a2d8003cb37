package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kazanion/internal/constants"
	"kazanion/internal/service"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// PurchaseHandler 商品兑换处理器
type PurchaseHandler struct {
	redemptionService *service.RedemptionService
	logger            *logger.Logger
}

// NewPurchaseHandler 创建商品兑换处理器
func NewPurchaseHandler(redemptionService *service.RedemptionService, logger *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{redemptionService: redemptionService, logger: logger}
}

// Purchase 用积分兑换商品的一个规格
// @Summary 兑换商品
// @Tags 商品
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} model.PurchaseResult
// @Router /api/products/{id}/purchase [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	productID, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var req types.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, constants.MsgInvalidRequest)
		return
	}

	result, err := h.redemptionService.Purchase(c.Request.Context(), productID, req)
	if err != nil {
		RespondError(c, h.logger, err, constants.MsgPurchaseFailed)
		return
	}

	c.JSON(http.StatusOK, result)
}
