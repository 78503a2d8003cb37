package apis

import (
	"time"

	"github.com/gin-gonic/gin"

	"kazanion/internal/api/handler"
	"kazanion/internal/middleware"
)

// LoginLimit 登录接口限流参数
type LoginLimit struct {
	Limit  int
	Window time.Duration
}

// RegisterPublicRoutes 注册不需要管理员认证的路由
func RegisterPublicRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter, loginLimit LoginLimit,
	authHandler *handler.AuthHandler, purchaseHandler *handler.PurchaseHandler, systemHandler *handler.SystemHandler) {
	loginGuard := limiter.Limit("login", loginLimit.Limit, loginLimit.Window)

	auth := router.Group("/auth")
	{
		auth.POST("/admin/login", loginGuard, authHandler.AdminLogin)
		auth.POST("/login", loginGuard, authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	router.POST("/products/:id/purchase", purchaseHandler.Purchase)
	router.GET("/leaderboard", systemHandler.Leaderboard)
}

// RegisterMobileRoutes 注册移动端路由
func RegisterMobileRoutes(router *gin.RouterGroup, mobileHandler *handler.MobileHandler) {
	mobile := router.Group("/mobile")
	{
		mobile.GET("/surveys", mobileHandler.Surveys)
		mobile.POST("/surveys/:id/complete", mobileHandler.CompleteSurvey)
		mobile.GET("/user/profile/:userId", mobileHandler.Profile)
		mobile.GET("/stories", mobileHandler.Stories)
		mobile.POST("/stories/:id/view", mobileHandler.ViewStory)
	}
}
