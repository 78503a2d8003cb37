package service

import (
	"context"
	"time"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// StoryService 故事服务
type StoryService struct {
	stories *repository.StoryRepository
	logger  *logger.Logger
	now     func() time.Time
}

// NewStoryService 创建故事服务
func NewStoryService(stories *repository.StoryRepository, logger *logger.Logger) *StoryService {
	return &StoryService{stories: stories, logger: logger, now: time.Now}
}

// List 后台分页获取全部故事
func (s *StoryService) List(ctx context.Context, page repository.Page) ([]model.Story, int64, error) {
	return s.stories.List(ctx, page)
}

// ListVisible 启用且未过期的故事
func (s *StoryService) ListVisible(ctx context.Context) ([]model.Story, error) {
	return s.stories.ListVisible(ctx, s.now())
}

// Get 根据ID获取故事
func (s *StoryService) Get(ctx context.Context, id int64) (*model.Story, error) {
	return s.stories.GetByID(ctx, id)
}

// Create 创建故事
func (s *StoryService) Create(ctx context.Context, req types.StoryRequest) (*model.Story, error) {
	if err := requireText(req.Title, constants.MsgTitleRequired); err != nil {
		return nil, err
	}
	st := &model.Story{IsActive: true}
	if err := applyStory(st, req); err != nil {
		return nil, err
	}
	if err := s.stories.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update 修改故事
func (s *StoryService) Update(ctx context.Context, id int64, req types.StoryRequest) (*model.Story, error) {
	if req.Title != nil {
		if err := requireText(req.Title, constants.MsgTitleRequired); err != nil {
			return nil, err
		}
	}
	st, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyStory(st, req); err != nil {
		return nil, err
	}
	if err := s.stories.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Delete 删除故事
func (s *StoryService) Delete(ctx context.Context, id int64) error {
	return s.stories.Delete(ctx, id)
}

// View 记录一次浏览
func (s *StoryService) View(ctx context.Context, id int64) error {
	return s.stories.IncrementView(ctx, id)
}

// DeactivateExpired 停用已过期的故事
func (s *StoryService) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := s.stories.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("已停用过期故事", "count", n)
	}
	return n, nil
}

func applyStory(st *model.Story, req types.StoryRequest) error {
	if req.Title != nil {
		st.Title = *req.Title
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.MediaURL != nil {
		st.MediaURL = *req.MediaURL
	}
	if req.MediaFile != nil {
		st.MediaFile = *req.MediaFile
	}
	if req.MediaType != nil {
		st.MediaType = *req.MediaType
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			st.ExpiresAt = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				return apperr.Validation(constants.MsgInvalidExpiresAt)
			}
			st.ExpiresAt = &t
		}
	}
	return nil
}
