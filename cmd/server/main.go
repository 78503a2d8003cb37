package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kazanion/config"
	"kazanion/internal/api"
	"kazanion/internal/scheduler"
	"kazanion/pkg/async"
	"kazanion/pkg/database"
	"kazanion/pkg/email"
	"kazanion/pkg/logger"
	"kazanion/pkg/token"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 初始化日志
	logger := logger.NewWithConfig(cfg.LogLevel, cfg.LogFile)
	defer logger.Close()

	// 初始化数据库连接
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("无法链接到数据库", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			logger.Fatal("数据库迁移失败", err)
		}
	}

	// 初始化Redis连接，未启用时缓存和限流关闭
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("无法链接到Redis", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 创建异步工作器
	worker := async.NewWorker(100, logger)
	worker.Start(5)

	emailService := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, logger)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	services := api.NewServices(api.Deps{
		DB:          db,
		RedisClient: redisClient,
		Worker:      worker,
		Email:       emailService,
		Tokens:      tokens,
		Logger:      logger,
	})

	sched := scheduler.NewScheduler(services.Analytics, services.Story, logger)
	sched.Start()

	// 初始化API路由
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(cfg, logger, services, redisClient, tokens)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		logger.Info("服务器启动", "port", cfg.APIPort, "db_driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("启动服务器失败", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("服务器被强制关闭", err)
	}
	sched.Stop()
	worker.Stop()

	logger.Info("服务器已正常退出")
}
