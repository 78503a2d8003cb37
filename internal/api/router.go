package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"kazanion/config"
	"kazanion/internal/api/admin"
	"kazanion/internal/api/apis"
	"kazanion/internal/api/handler"
	"kazanion/internal/middleware"
	"kazanion/internal/repository"
	"kazanion/internal/service"
	"kazanion/pkg/async"
	"kazanion/pkg/cache"
	"kazanion/pkg/email"
	"kazanion/pkg/logger"
	"kazanion/pkg/token"
)

// 缓存前缀和默认过期时间
const (
	cachePrefix = "kazanion:"
	cacheTTL    = 5 * time.Minute
)

// Services 路由和调度器共用的服务
type Services struct {
	User         *service.UserService
	Auth         *service.AuthService
	AdminUser    *service.AdminUserService
	Survey       *service.SurveyService
	Story        *service.StoryService
	MapTask      *service.MapTaskService
	Notification *service.NotificationService
	Setting      *service.SettingService
	Store        *service.StoreService
	Product      *service.ProductService
	Redemption   *service.RedemptionService
	Analytics    *service.AnalyticsService
	System       *service.SystemService
}

// Deps 构建服务需要的外部资源，RedisClient、Worker 可以为nil
type Deps struct {
	DB          *sqlx.DB
	RedisClient *redis.Client
	Worker      *async.Worker
	Email       email.Sender
	Tokens      *token.Manager
	Logger      *logger.Logger
}

// NewServices 初始化存储库和服务
func NewServices(d Deps) *Services {
	appCache := cache.New(d.RedisClient, cachePrefix, cacheTTL)

	// 初始化存储库
	tx := repository.NewTransactor(d.DB)
	userRepo := repository.NewUserRepository(d.DB)
	adminRepo := repository.NewAdminUserRepository(d.DB)
	surveyRepo := repository.NewSurveyRepository(d.DB)
	responseRepo := repository.NewSurveyResponseRepository(d.DB)
	storyRepo := repository.NewStoryRepository(d.DB)
	mapTaskRepo := repository.NewMapTaskRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	settingRepo := repository.NewSettingRepository(d.DB)
	storeRepo := repository.NewStoreRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	redemptionRepo := repository.NewRedemptionRepository(d.DB)
	analyticsRepo := repository.NewAnalyticsRepository(d.DB)

	// 初始化服务
	analytics := service.NewAnalyticsService(tx, analyticsRepo, surveyRepo, userRepo, appCache, d.Logger)
	return &Services{
		User:         service.NewUserService(userRepo, responseRepo, d.Logger),
		Auth:         service.NewAuthService(adminRepo, userRepo, d.Tokens, d.Logger),
		AdminUser:    service.NewAdminUserService(adminRepo, d.Logger),
		Survey:       service.NewSurveyService(tx, surveyRepo, responseRepo, userRepo, analytics, d.Worker, appCache, d.Logger),
		Story:        service.NewStoryService(storyRepo, d.Logger),
		MapTask:      service.NewMapTaskService(mapTaskRepo),
		Notification: service.NewNotificationService(notificationRepo, userRepo, d.Email, d.Worker, d.Logger),
		Setting:      service.NewSettingService(tx, settingRepo, appCache, d.Logger),
		Store:        service.NewStoreService(storeRepo),
		Product:      service.NewProductService(productRepo, storeRepo, d.Logger),
		Redemption:   service.NewRedemptionService(tx, productRepo, userRepo, redemptionRepo, appCache, d.Logger),
		Analytics:    analytics,
		System:       service.NewSystemService(d.DB, d.RedisClient, appCache, d.Worker),
	}
}

// SetupRouter 设置API路由
func SetupRouter(cfg *config.Config, logger *logger.Logger, svc *Services, redisClient *redis.Client, tokens *token.Manager) *gin.Engine {
	router := gin.New()

	// 使用中间件
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// 初始化处理器
	authHandler := handler.NewAuthHandler(svc.Auth, logger)
	purchaseHandler := handler.NewPurchaseHandler(svc.Redemption, logger)
	mobileHandler := handler.NewMobileHandler(svc.Survey, svc.Story, svc.User, logger)
	systemHandler := handler.NewSystemHandler(svc.System, svc.Analytics, logger)

	// 健康检查
	router.GET("/health", systemHandler.Health)

	v1 := router.Group("/api")
	v1.GET("/health", systemHandler.Health)

	limiter := middleware.NewRateLimiter(redisClient, logger)
	apis.RegisterPublicRoutes(v1, limiter, apis.LoginLimit{
		Limit:  cfg.RateLimit.LoginLimit,
		Window: cfg.RateLimit.LoginWindow,
	}, authHandler, purchaseHandler, systemHandler)
	apis.RegisterMobileRoutes(v1, mobileHandler)

	// 后台路由需要管理员令牌
	adminRouter := v1.Group("")
	adminRouter.Use(middleware.AdminAuth(tokens))
	admin.RegisterAdminRoutes(adminRouter, admin.Handlers{
		Users:         admin.NewUserAdminHandler(svc.User, svc.Auth, logger),
		Surveys:       admin.NewSurveyAdminHandler(svc.Survey, logger),
		Stories:       admin.NewStoryAdminHandler(svc.Story, logger),
		Products:      admin.NewProductAdminHandler(svc.Product, logger),
		Stores:        admin.NewStoreAdminHandler(svc.Store, logger),
		MapTasks:      admin.NewMapTaskAdminHandler(svc.MapTask, logger),
		Notifications: admin.NewNotificationAdminHandler(svc.Notification, logger),
		Settings:      admin.NewSettingAdminHandler(svc.Setting, logger),
		Admins:        admin.NewAdminUserHandler(svc.AdminUser, logger),
		Analytics:     admin.NewAnalyticsAdminHandler(svc.Analytics, svc.Redemption, logger),
	})

	return router
}
