package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// 列表分页默认值
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// RespondError 把业务错误转换为 {message} 响应，未预期的错误记录日志并返回 fallback
func RespondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnexpected {
		log.Error(fallback,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			err,
		)
	}
	c.JSON(kind.HTTPStatus(), gin.H{"message": apperr.MessageOf(err, fallback)})
}

// BadRequest 返回400
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

// ParseID 读取路径参数中的正整数ID，失败时已写入400响应
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, constants.MsgInvalidID)
		return 0, false
	}
	return id, true
}

// ParsePage 读取 offset/limit，limit 缺省为50，最大200
func ParsePage(c *gin.Context) (repository.Page, bool) {
	var q types.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, constants.MsgInvalidRequest)
		return repository.Page{}, false
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return repository.Page{Offset: q.Offset, Limit: q.Limit}, true
}

// RespondList 列表响应
func RespondList(c *gin.Context, items interface{}, total int64) {
	c.JSON(http.StatusOK, gin.H{"items": items, "totalCount": total})
}
