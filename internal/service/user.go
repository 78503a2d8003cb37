package service

import (
	"context"

	"github.com/shopspring/decimal"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// UserService App用户管理服务
type UserService struct {
	users     *repository.UserRepository
	responses *repository.SurveyResponseRepository
	logger    *logger.Logger
}

// NewUserService 创建用户服务
func NewUserService(users *repository.UserRepository, responses *repository.SurveyResponseRepository, logger *logger.Logger) *UserService {
	return &UserService{users: users, responses: responses, logger: logger}
}

// List 分页获取用户
func (s *UserService) List(ctx context.Context, page repository.Page) ([]model.User, int64, error) {
	return s.users.List(ctx, page)
}

// Get 根据ID获取用户
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update 修改用户资料，用户名不能与其他用户重复
func (s *UserService) Update(ctx context.Context, id int64, req types.UpdateUserRequest) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != u.Username {
		taken, err := s.users.UsernameTaken(ctx, *req.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict(constants.MsgUsernameTaken)
		}
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Age != nil {
		u.Age = req.Age
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.Latitude != nil {
		u.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		u.Longitude = req.Longitude
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Status != nil {
		u.Status = *req.Status
	}

	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict(constants.MsgEmailExists)
		}
		return nil, err
	}
	return u, nil
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("用户已删除", "user_id", id)
	return nil
}

// History 用户的问卷参与记录，已完成和未完成分开返回
func (s *UserService) History(ctx context.Context, id int64) (*model.UserHistory, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.responses.History(ctx, id)
	if err != nil {
		return nil, err
	}

	h := &model.UserHistory{
		CompletedSurveys:  []model.SurveyHistoryItem{},
		IncompleteSurveys: []model.SurveyHistoryItem{},
		TotalEarnings:     decimal.Zero,
	}
	for _, it := range items {
		if it.IsCompleted {
			h.CompletedSurveys = append(h.CompletedSurveys, it)
			h.TotalEarnings = h.TotalEarnings.Add(it.Reward)
		} else {
			h.IncompleteSurveys = append(h.IncompleteSurveys, it)
		}
	}
	h.CompletedCount = len(h.CompletedSurveys)
	return h, nil
}
