package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/cache"
	"kazanion/pkg/logger"
)

// SettingService 系统设置服务，读取走缓存
type SettingService struct {
	tx       *repository.Transactor
	settings *repository.SettingRepository
	cache    *cache.Cache
	logger   *logger.Logger
}

// NewSettingService 创建设置服务
func NewSettingService(tx *repository.Transactor, settings *repository.SettingRepository, cache *cache.Cache, logger *logger.Logger) *SettingService {
	return &SettingService{tx: tx, settings: settings, cache: cache, logger: logger}
}

// List 获取全部设置
func (s *SettingService) List(ctx context.Context) ([]model.Setting, error) {
	return cache.Fetch(ctx, s.cache, cacheKeySettings, s.settings.List)
}

// Upsert 在一个事务内写入多个设置
func (s *SettingService) Upsert(ctx context.Context, items []types.SettingItem) ([]model.Setting, error) {
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		repo := s.settings.WithTx(tx)
		for _, it := range items {
			if err := repo.Upsert(ctx, &model.Setting{Key: it.Key, Value: it.Value, Description: it.Description}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.settings.List(ctx)
}

// Delete 删除设置
func (s *SettingService) Delete(ctx context.Context, key string) error {
	if err := s.settings.Delete(ctx, key); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeySettings); err != nil {
		s.logger.Warn("清除设置缓存失败", err)
	}
}
