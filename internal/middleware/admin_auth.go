package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kazanion/internal/constants"
	"kazanion/pkg/token"
)

// 上下文键
const (
	ContextAdminID   = "admin_id"
	ContextAdminRole = "admin_role"
)

// AdminAuth 管理员认证中间件，校验 Authorization: Bearer <token>
func AdminAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": constants.MsgUnauthorized})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": constants.MsgInvalidToken})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminRole, claims.Role)
		c.Next()
	}
}
