package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"kazanion/internal/model"
)

// AnalyticsRepository 统计存储库
type AnalyticsRepository struct {
	base
}

// NewAnalyticsRepository 创建统计存储库
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *AnalyticsRepository) WithTx(tx *sqlx.Tx) *AnalyticsRepository {
	return &AnalyticsRepository{base: base{q: tx}}
}

// AnswerRow 一份已完成的作答及作答者画像
type AnswerRow struct {
	Responses types.JSONText `db:"responses"`
	Gender    string         `db:"gender"`
	Age       *int           `db:"age"`
	City      string         `db:"city"`
}

// DashboardStats 实时汇总
func (r *AnalyticsRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	err := r.get(ctx, &stats, `SELECT
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM users WHERE is_active = ?) AS active_users,
		(SELECT COUNT(*) FROM surveys) AS total_surveys,
		(SELECT COUNT(*) FROM surveys WHERE status = ?) AS active_surveys,
		(SELECT COUNT(*) FROM survey_responses WHERE is_completed = ?) AS completed_surveys,
		(SELECT COALESCE(SUM(total_earnings), 0) FROM users) AS total_earnings,
		(SELECT COUNT(*) FROM redemptions) AS total_redemptions`,
		true, model.SurveyStatusActive, true)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SaveSnapshot 写入某日快照，同一天重复写入时覆盖
func (r *AnalyticsRepository) SaveSnapshot(ctx context.Context, a *model.Analytics) error {
	a.Date = truncateDay(a.Date)
	a.CreatedAt = time.Now()
	if _, err := r.exec(ctx, "DELETE FROM analytics WHERE snapshot_date = ?", a.Date); err != nil {
		return err
	}
	id, err := r.insert(ctx, `INSERT INTO analytics (snapshot_date, total_users, active_users, completed_surveys,
		total_earnings, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.Date, a.TotalUsers, a.ActiveUsers, a.CompletedSurveys, a.TotalEarnings, a.CreatedAt)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// ListRange 返回 [start, end] 内的快照，按日期升序
func (r *AnalyticsRepository) ListRange(ctx context.Context, start, end time.Time) ([]model.Analytics, error) {
	items := []model.Analytics{}
	err := r.selectAll(ctx, &items, "SELECT * FROM analytics WHERE snapshot_date >= ? AND snapshot_date <= ? ORDER BY snapshot_date",
		truncateDay(start), truncateDay(end))
	return items, err
}

// ListBySurvey 某问卷的单题统计
func (r *AnalyticsRepository) ListBySurvey(ctx context.Context, surveyID int64) ([]model.SurveyAnalytics, error) {
	items := []model.SurveyAnalytics{}
	err := r.selectAll(ctx, &items, "SELECT * FROM survey_analytics WHERE survey_id = ? ORDER BY id", surveyID)
	return items, err
}

// CompletedAnswers 某问卷全部已完成的作答
func (r *AnalyticsRepository) CompletedAnswers(ctx context.Context, surveyID int64) ([]AnswerRow, error) {
	rows := []AnswerRow{}
	err := r.selectAll(ctx, &rows, `SELECT sr.responses, u.gender, u.age, u.city
		FROM survey_responses sr JOIN users u ON u.id = sr.user_id
		WHERE sr.survey_id = ? AND sr.is_completed = ?`, surveyID, true)
	return rows, err
}

// ReplaceSurveyAnalytics 用新统计结果整体替换某问卷的单题统计
func (r *AnalyticsRepository) ReplaceSurveyAnalytics(ctx context.Context, surveyID int64, items []model.SurveyAnalytics) error {
	if _, err := r.exec(ctx, "DELETE FROM survey_analytics WHERE survey_id = ?", surveyID); err != nil {
		return err
	}
	now := time.Now()
	for i := range items {
		it := &items[i]
		it.SurveyID = surveyID
		it.CreatedAt, it.UpdatedAt = now, now
		id, err := r.insert(ctx, `INSERT INTO survey_analytics (survey_id, question_id, question_text, question_type,
			response_data, demographics, total_responses, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.SurveyID, it.QuestionID, it.QuestionText, it.QuestionType,
			it.ResponseData, it.Demographics, it.TotalResponses, now, now)
		if err != nil {
			return err
		}
		it.ID = id
	}
	return nil
}

// truncateDay 快照日期统一为UTC零点
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
