package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"kazanion/internal/constants"
	"kazanion/pkg/logger"
)

// RateLimiter 基于Redis固定窗口计数的限流器，客户端为nil时不限流
type RateLimiter struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *redis.Client, logger *logger.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, logger: logger}
}

// Limit 每个客户端IP在 window 内最多 limit 次请求
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())
		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			rl.logger.Warn("限流计数失败", "key", key, err)
			c.Next()
			return
		}
		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": constants.MsgTooManyRequests})
			return
		}
		c.Next()
	}
}
