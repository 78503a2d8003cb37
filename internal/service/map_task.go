package service

import (
	"context"

	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
)

// MapTaskService 地图任务服务
type MapTaskService struct {
	tasks *repository.MapTaskRepository
}

// NewMapTaskService 创建地图任务服务
func NewMapTaskService(tasks *repository.MapTaskRepository) *MapTaskService {
	return &MapTaskService{tasks: tasks}
}

// List 分页获取地图任务
func (s *MapTaskService) List(ctx context.Context, status string, page repository.Page) ([]model.MapTask, int64, error) {
	return s.tasks.List(ctx, status, page)
}

// Get 根据ID获取地图任务
func (s *MapTaskService) Get(ctx context.Context, id int64) (*model.MapTask, error) {
	return s.tasks.GetByID(ctx, id)
}

// Create 创建地图任务
func (s *MapTaskService) Create(ctx context.Context, req types.MapTaskRequest) (*model.MapTask, error) {
	t := &model.MapTask{
		Title:       req.Title,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Radius:      req.Radius,
		Reward:      req.Reward,
		Status:      req.Status,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update 修改地图任务
func (s *MapTaskService) Update(ctx context.Context, id int64, req types.UpdateMapTaskRequest) (*model.MapTask, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Latitude != nil {
		t.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		t.Longitude = *req.Longitude
	}
	if req.Radius != nil {
		t.Radius = *req.Radius
	}
	if req.Reward != nil {
		t.Reward = *req.Reward
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete 删除地图任务
func (s *MapTaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}
