package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/pkg/cache"
	"kazanion/pkg/logger"
)

// leaderboardSize 排行榜人数
const leaderboardSize = 20

var badges = []string{"gold", "silver", "bronze"}

// AnalyticsService 统计服务
type AnalyticsService struct {
	tx        *repository.Transactor
	analytics *repository.AnalyticsRepository
	surveys   *repository.SurveyRepository
	users     *repository.UserRepository
	cache     *cache.Cache
	logger    *logger.Logger
}

// NewAnalyticsService 创建统计服务
func NewAnalyticsService(
	tx *repository.Transactor,
	analytics *repository.AnalyticsRepository,
	surveys *repository.SurveyRepository,
	users *repository.UserRepository,
	cache *cache.Cache,
	logger *logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{tx: tx, analytics: analytics, surveys: surveys, users: users, cache: cache, logger: logger}
}

// Dashboard 仪表盘汇总，缓存未命中时同一时刻只查询一次数据库
func (s *AnalyticsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return cache.Fetch(ctx, s.cache, cacheKeyDashboard, s.analytics.DashboardStats)
}

// Range 日期区间内的每日快照
func (s *AnalyticsService) Range(ctx context.Context, start, end time.Time) ([]model.Analytics, error) {
	return s.analytics.ListRange(ctx, start, end)
}

// SurveyAnalytics 某问卷的单题统计
func (s *AnalyticsService) SurveyAnalytics(ctx context.Context, surveyID int64) ([]model.SurveyAnalytics, error) {
	return s.analytics.ListBySurvey(ctx, surveyID)
}

// Leaderboard 余额排行榜，前三名带奖牌
func (s *AnalyticsService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := s.users.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
		if i < len(badges) {
			entries[i].Badge = badges[i]
		}
	}
	return entries, nil
}

// TakeSnapshot 以当前汇总写入 day 当天的快照
func (s *AnalyticsService) TakeSnapshot(ctx context.Context, day time.Time) (*model.Analytics, error) {
	stats, err := s.analytics.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计汇总失败: %w", err)
	}
	snap := &model.Analytics{
		Date:             day,
		TotalUsers:       stats.TotalUsers,
		ActiveUsers:      stats.ActiveUsers,
		CompletedSurveys: stats.CompletedSurveys,
		TotalEarnings:    stats.TotalEarnings,
	}
	if err := s.analytics.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("写入统计快照失败: %w", err)
	}
	s.logger.Info("统计快照已写入", "date", snap.Date.Format("2006-01-02"), "total_users", snap.TotalUsers)
	return snap, nil
}

// question 问卷问题定义中统计需要的字段
type question struct {
	ID       json.RawMessage `json:"id"`
	Text     string          `json:"text"`
	Question string          `json:"question"`
	Type     string          `json:"type"`
}

// key 问题ID可能是数字或字符串
func (q question) key(index int) string {
	if len(q.ID) == 0 {
		return strconv.Itoa(index + 1)
	}
	var s string
	if err := json.Unmarshal(q.ID, &s); err == nil {
		return s
	}
	return string(q.ID)
}

// RefreshSurveyAnalytics 根据已完成的作答重算每道题的答案分布和作答者画像
func (s *AnalyticsService) RefreshSurveyAnalytics(ctx context.Context, surveyID int64) error {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}
	var questions []question
	if len(sv.Questions) > 0 {
		if err := json.Unmarshal(sv.Questions, &questions); err != nil {
			return fmt.Errorf("问卷 %d 的问题格式错误: %w", surveyID, err)
		}
	}
	rows, err := s.analytics.CompletedAnswers(ctx, surveyID)
	if err != nil {
		return err
	}

	items := make([]model.SurveyAnalytics, 0, len(questions))
	for i, q := range questions {
		key := q.key(i)
		counts := map[string]int{}
		demo := map[string]map[string]int{"gender": {}, "city": {}, "ageGroup": {}}
		total := 0

		for _, row := range rows {
			var answers map[string]json.RawMessage
			if err := json.Unmarshal(row.Responses, &answers); err != nil {
				continue
			}
			raw, ok := answers[key]
			if !ok {
				continue
			}
			total++
			for _, v := range answerValues(raw) {
				counts[v]++
			}
			demo["gender"][orUnknown(row.Gender)]++
			demo["city"][orUnknown(row.City)]++
			demo["ageGroup"][ageGroup(row.Age)]++
		}

		text := q.Text
		if text == "" {
			text = q.Question
		}
		responseData, _ := json.Marshal(counts)
		demographics, _ := json.Marshal(demo)
		items = append(items, model.SurveyAnalytics{
			QuestionID:     key,
			QuestionText:   text,
			QuestionType:   q.Type,
			ResponseData:   types.JSONText(responseData),
			Demographics:   types.JSONText(demographics),
			TotalResponses: total,
		})
	}

	return s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		return s.analytics.WithTx(tx).ReplaceSurveyAnalytics(ctx, surveyID, items)
	})
}

// answerValues 将单个答案展开为可计数的值，多选题为数组
func answerValues(raw json.RawMessage) []string {
	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			out = append(out, fmt.Sprint(v))
		}
		return out
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil
	}
	return []string{fmt.Sprint(v)}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// ageGroup 年龄段
func ageGroup(age *int) string {
	if age == nil {
		return "unknown"
	}
	switch a := *age; {
	case a < 18:
		return "<18"
	case a < 25:
		return "18-24"
	case a < 35:
		return "25-34"
	case a < 45:
		return "35-44"
	case a < 55:
		return "45-54"
	default:
		return "55+"
	}
}
