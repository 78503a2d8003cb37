package admin

import (
	"github.com/gin-gonic/gin"
)

// Handlers 后台全部处理器
type Handlers struct {
	Users         *UserAdminHandler
	Surveys       *SurveyAdminHandler
	Stories       *StoryAdminHandler
	Products      *ProductAdminHandler
	Stores        *StoreAdminHandler
	MapTasks      *MapTaskAdminHandler
	Notifications *NotificationAdminHandler
	Settings      *SettingAdminHandler
	Admins        *AdminUserHandler
	Analytics     *AnalyticsAdminHandler
}

// RegisterAdminRoutes 注册后台API路由，调用方负责挂载认证中间件
func RegisterAdminRoutes(router *gin.RouterGroup, h Handlers) {
	// 用户管理路由
	users := router.Group("/users")
	{
		users.GET("", h.Users.ListUsers)
		users.POST("", h.Users.CreateUser)
		users.GET("/:id", h.Users.GetUser)
		users.PUT("/:id", h.Users.UpdateUser)
		users.DELETE("/:id", h.Users.DeleteUser)
		users.GET("/:id/history", h.Users.UserHistory)
	}

	surveys := router.Group("/surveys")
	{
		surveys.GET("", h.Surveys.ListSurveys)
		surveys.POST("", h.Surveys.CreateSurvey)
		surveys.GET("/:id", h.Surveys.GetSurvey)
		surveys.PUT("/:id", h.Surveys.UpdateSurvey)
		surveys.DELETE("/:id", h.Surveys.DeleteSurvey)
	}

	stories := router.Group("/stories")
	{
		stories.GET("", h.Stories.ListStories)
		stories.POST("", h.Stories.CreateStory)
		stories.GET("/:id", h.Stories.GetStory)
		stories.PUT("/:id", h.Stories.UpdateStory)
		stories.DELETE("/:id", h.Stories.DeleteStory)
	}

	// 商品管理路由，兑换接口在公开路由中
	products := router.Group("/products")
	{
		products.GET("", h.Products.ListProducts)
		products.POST("", h.Products.CreateProduct)
		products.GET("/:id", h.Products.GetProduct)
		products.PUT("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	stores := router.Group("/stores")
	{
		stores.GET("", h.Stores.ListStores)
		stores.POST("", h.Stores.CreateStore)
		stores.GET("/:id", h.Stores.GetStore)
		stores.PUT("/:id", h.Stores.UpdateStore)
		stores.DELETE("/:id", h.Stores.DeleteStore)
	}

	mapTasks := router.Group("/map-tasks")
	{
		mapTasks.GET("", h.MapTasks.ListMapTasks)
		mapTasks.POST("", h.MapTasks.CreateMapTask)
		mapTasks.GET("/:id", h.MapTasks.GetMapTask)
		mapTasks.PUT("/:id", h.MapTasks.UpdateMapTask)
		mapTasks.DELETE("/:id", h.MapTasks.DeleteMapTask)
	}

	// 通知管理路由
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.Notifications.ListNotifications)
		notifications.POST("", h.Notifications.CreateNotification)
		notifications.GET("/:id", h.Notifications.GetNotification)
		notifications.PUT("/:id", h.Notifications.UpdateNotification)
		notifications.DELETE("/:id", h.Notifications.DeleteNotification)
		notifications.POST("/send/:id", h.Notifications.SendNotification)
	}

	settings := router.Group("/settings")
	{
		settings.GET("", h.Settings.ListSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.DELETE("/:key", h.Settings.DeleteSetting)
	}

	// 当前会话
	router.GET("/auth/me", h.Admins.CurrentAdmin)
	router.POST("/auth/logout", h.Admins.Logout)

	admins := router.Group("/admin-users")
	{
		admins.GET("", h.Admins.ListAdmins)
		admins.POST("", h.Admins.CreateAdmin)
		admins.GET("/:id", h.Admins.GetAdmin)
		admins.PUT("/:id", h.Admins.UpdateAdmin)
		admins.DELETE("/:id", h.Admins.DeleteAdmin)
	}

	// 统计路由
	router.GET("/dashboard/stats", h.Analytics.DashboardStats)
	router.GET("/analytics", h.Analytics.ListAnalytics)
	router.POST("/analytics/snapshot", h.Analytics.TakeSnapshot)
	router.GET("/survey-analytics/:surveyId", h.Analytics.SurveyAnalytics)
	router.POST("/survey-analytics/:surveyId/refresh", h.Analytics.RefreshSurveyAnalytics)
	router.GET("/redemptions", h.Analytics.ListRedemptions)
}
