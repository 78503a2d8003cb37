package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	reqtypes "kazanion/internal/types"
	"kazanion/pkg/async"
	"kazanion/pkg/cache"
	"kazanion/pkg/logger"
)

// SurveyService 问卷服务
type SurveyService struct {
	tx        *repository.Transactor
	surveys   *repository.SurveyRepository
	responses *repository.SurveyResponseRepository
	users     *repository.UserRepository
	analytics *AnalyticsService
	worker    *async.Worker
	cache     *cache.Cache
	logger    *logger.Logger
}

// NewSurveyService 创建问卷服务，worker 为nil时同步重算统计
func NewSurveyService(
	tx *repository.Transactor,
	surveys *repository.SurveyRepository,
	responses *repository.SurveyResponseRepository,
	users *repository.UserRepository,
	analytics *AnalyticsService,
	worker *async.Worker,
	cache *cache.Cache,
	logger *logger.Logger,
) *SurveyService {
	return &SurveyService{
		tx:        tx,
		surveys:   surveys,
		responses: responses,
		users:     users,
		analytics: analytics,
		worker:    worker,
		cache:     cache,
		logger:    logger,
	}
}

// List 分页获取问卷
func (s *SurveyService) List(ctx context.Context, status string, page repository.Page) ([]model.Survey, int64, error) {
	return s.surveys.List(ctx, status, page)
}

// ListActive 移动端可见的问卷
func (s *SurveyService) ListActive(ctx context.Context, page repository.Page) ([]model.Survey, error) {
	surveys, _, err := s.surveys.List(ctx, model.SurveyStatusActive, page)
	return surveys, err
}

// Get 根据ID获取问卷
func (s *SurveyService) Get(ctx context.Context, id int64) (*model.Survey, error) {
	return s.surveys.GetByID(ctx, id)
}

// Create 创建问卷
func (s *SurveyService) Create(ctx context.Context, req reqtypes.SurveyRequest) (*model.Survey, error) {
	sv := &model.Survey{
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		Category:           req.Category,
		Status:             req.Status,
		TargetParticipants: 1000,
		Reward:             req.Reward,
		Duration:           req.Duration,
		URL:                req.URL,
		Questions:          types.JSONText(req.Questions),
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Radius:             req.Radius,
	}
	if req.TargetParticipants != nil {
		sv.TargetParticipants = *req.TargetParticipants
	}
	if err := validQuestions(sv.Questions); err != nil {
		return nil, err
	}
	if err := s.surveys.Create(ctx, sv); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return sv, nil
}

// Update 修改问卷
func (s *SurveyService) Update(ctx context.Context, id int64, req reqtypes.UpdateSurveyRequest) (*model.Survey, error) {
	sv, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sv.Title = *req.Title
	}
	if req.Description != nil {
		sv.Description = *req.Description
	}
	if req.Type != nil {
		sv.Type = *req.Type
	}
	if req.Category != nil {
		sv.Category = *req.Category
	}
	if req.Status != nil {
		if *req.Status == model.SurveyStatusCompleted && sv.Status != model.SurveyStatusCompleted {
			now := time.Now()
			sv.CompletedAt = &now
		}
		sv.Status = *req.Status
	}
	if req.TargetParticipants != nil {
		sv.TargetParticipants = *req.TargetParticipants
	}
	if req.Reward != nil {
		sv.Reward = *req.Reward
	}
	if req.Duration != nil {
		sv.Duration = *req.Duration
	}
	if req.URL != nil {
		sv.URL = *req.URL
	}
	if len(req.Questions) > 0 {
		sv.Questions = types.JSONText(req.Questions)
		if err := validQuestions(sv.Questions); err != nil {
			return nil, err
		}
	}
	if req.Latitude != nil {
		sv.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		sv.Longitude = req.Longitude
	}
	if req.Radius != nil {
		sv.Radius = req.Radius
	}

	if err := s.surveys.Update(ctx, sv); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return sv, nil
}

// Delete 删除问卷
func (s *SurveyService) Delete(ctx context.Context, id int64) error {
	if err := s.surveys.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Complete 用户完成问卷：写入作答、发放奖励并更新计数，每个用户每份问卷只能完成一次
func (s *SurveyService) Complete(ctx context.Context, surveyID int64, req reqtypes.CompleteSurveyRequest) (*model.User, error) {
	if req.UserID <= 0 {
		return nil, apperr.Validation(constants.MsgUserIDRequired)
	}
	answers := req.Responses
	if len(answers) == 0 {
		answers = req.Answers
	}
	if len(answers) == 0 {
		answers = json.RawMessage("{}")
	}
	if !json.Valid(answers) {
		return nil, apperr.Validation(constants.MsgInvalidRequest)
	}

	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		surveys := s.surveys.WithTx(tx)
		responses := s.responses.WithTx(tx)
		users := s.users.WithTx(tx)

		sv, err := surveys.GetByID(ctx, surveyID)
		if err != nil {
			return err
		}
		if sv.Status != model.SurveyStatusActive {
			return apperr.Validation(constants.MsgSurveyNotActive)
		}
		if _, err := users.GetByID(ctx, req.UserID); err != nil {
			return err
		}

		now := time.Now()
		existing, err := responses.Find(ctx, surveyID, req.UserID)
		if err != nil {
			return err
		}
		switch {
		case existing != nil && existing.IsCompleted:
			return apperr.Conflict(constants.MsgSurveyAlreadyDone)
		case existing != nil:
			existing.Responses = types.JSONText(answers)
			existing.Score = req.Score
			existing.CompletedAt = &now
			err = responses.Complete(ctx, existing)
		default:
			err = responses.Create(ctx, &model.SurveyResponse{
				SurveyID:    surveyID,
				UserID:      req.UserID,
				Responses:   types.JSONText(answers),
				IsCompleted: true,
				Score:       req.Score,
				StartedAt:   now,
				CompletedAt: &now,
			})
		}
		if err != nil {
			return uniqueConflict(err, constants.MsgSurveyAlreadyDone)
		}

		if err := users.CreditSurveyReward(ctx, req.UserID, sv.Reward); err != nil {
			return err
		}
		return surveys.IncrementCompletion(ctx, surveyID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("问卷已完成", "survey_id", surveyID, "user_id", req.UserID)
	s.invalidateStats(ctx)
	s.refreshAnalytics(surveyID)
	return s.users.GetByID(ctx, req.UserID)
}

// refreshAnalytics 重算单题统计，失败只记录日志
func (s *SurveyService) refreshAnalytics(surveyID int64) {
	if s.analytics == nil {
		return
	}
	task := async.Task{
		Name:     "survey-analytics",
		Timeout:  30 * time.Second,
		RetryMax: 2,
		Handler: func(ctx context.Context) error {
			return s.analytics.RefreshSurveyAnalytics(ctx, surveyID)
		},
	}
	if s.worker == nil {
		if err := task.Handler(context.Background()); err != nil {
			s.logger.Error("重算问卷统计失败", "survey_id", surveyID, err)
		}
		return
	}
	if err := s.worker.Submit(task); err != nil {
		s.logger.Warn("提交问卷统计任务失败", "survey_id", surveyID, err)
	}
}

func (s *SurveyService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyDashboard); err != nil {
		s.logger.Warn("清除仪表盘缓存失败", err)
	}
}

// validQuestions 问题列表必须是JSON数组
func validQuestions(q types.JSONText) error {
	if len(q) == 0 {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(q, &list); err != nil {
		return apperr.Validation(constants.MsgInvalidRequest)
	}
	return nil
}
