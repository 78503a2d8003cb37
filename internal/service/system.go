package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"kazanion/pkg/async"
	"kazanion/pkg/cache"
)

// HealthStatus 健康检查结果
type HealthStatus struct {
	Status   string      `json:"status"`
	Database string      `json:"database"`
	Redis    string      `json:"redis"`
	Cache    cache.Stats `json:"cache"`
	Tasks    TaskCounts  `json:"tasks"`
	Time     time.Time   `json:"time"`
}

// TaskCounts 异步任务执行计数
type TaskCounts struct {
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
}

// SystemService 系统状态服务
type SystemService struct {
	db          *sqlx.DB
	redisClient *redis.Client
	cache       *cache.Cache
	worker      *async.Worker
}

// NewSystemService 创建系统状态服务实例，redisClient 和 worker 可以为nil
func NewSystemService(db *sqlx.DB, redisClient *redis.Client, cache *cache.Cache, worker *async.Worker) *SystemService {
	return &SystemService{db: db, redisClient: redisClient, cache: cache, worker: worker}
}

// Health 检查数据库和Redis连接，数据库不可用时 Status 为 degraded
func (s *SystemService) Health(ctx context.Context) *HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	h := &HealthStatus{Status: "ok", Database: "up", Redis: "disabled", Cache: s.cache.Stats(), Time: time.Now()}
	if err := s.db.PingContext(ctx); err != nil {
		h.Status, h.Database = "degraded", "down"
	}
	if s.redisClient != nil {
		h.Redis = "up"
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			h.Redis = "down"
		}
	}
	if s.worker != nil {
		h.Tasks.Succeeded, h.Tasks.Failed = s.worker.Counts()
	}
	return h
}
