package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"kazanion/internal/model"
)

// SurveyResponseRepository 问卷作答存储库
type SurveyResponseRepository struct {
	base
}

// NewSurveyResponseRepository 创建作答存储库
func NewSurveyResponseRepository(db *sqlx.DB) *SurveyResponseRepository {
	return &SurveyResponseRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *SurveyResponseRepository) WithTx(tx *sqlx.Tx) *SurveyResponseRepository {
	return &SurveyResponseRepository{base: base{q: tx}}
}

// Create 写入作答记录，(survey_id, user_id) 唯一
func (r *SurveyResponseRepository) Create(ctx context.Context, sr *model.SurveyResponse) error {
	if sr.StartedAt.IsZero() {
		sr.StartedAt = time.Now()
	}
	if len(sr.Responses) == 0 {
		sr.Responses = types.JSONText("{}")
	}
	id, err := r.insert(ctx, `INSERT INTO survey_responses (survey_id, user_id, responses, is_completed, score, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sr.SurveyID, sr.UserID, sr.Responses, sr.IsCompleted, sr.Score, sr.StartedAt, sr.CompletedAt)
	if err != nil {
		return err
	}
	sr.ID = id
	return nil
}

// Find 获取用户在某问卷上的作答，不存在时返回 nil
func (r *SurveyResponseRepository) Find(ctx context.Context, surveyID, userID int64) (*model.SurveyResponse, error) {
	var sr model.SurveyResponse
	err := r.get(ctx, &sr, "SELECT * FROM survey_responses WHERE survey_id = ? AND user_id = ?", surveyID, userID)
	if errors.Is(err, errNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// Complete 将已有作答标记为完成
func (r *SurveyResponseRepository) Complete(ctx context.Context, sr *model.SurveyResponse) error {
	_, err := r.exec(ctx, "UPDATE survey_responses SET responses = ?, is_completed = ?, score = ?, completed_at = ? WHERE id = ?",
		sr.Responses, true, sr.Score, sr.CompletedAt, sr.ID)
	return err
}

// History 用户参与过的问卷，按开始时间倒序
func (r *SurveyResponseRepository) History(ctx context.Context, userID int64) ([]model.SurveyHistoryItem, error) {
	items := []model.SurveyHistoryItem{}
	err := r.selectAll(ctx, &items, `SELECT sr.survey_id, s.title, s.category, s.reward, sr.is_completed, sr.started_at, sr.completed_at
		FROM survey_responses sr JOIN surveys s ON s.id = sr.survey_id
		WHERE sr.user_id = ? ORDER BY sr.started_at DESC, sr.id DESC`, userID)
	return items, err
}

// CountCompleted 已完成的作答总数
func (r *SurveyResponseRepository) CountCompleted(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM survey_responses WHERE is_completed = ?", true)
}
