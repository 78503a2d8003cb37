package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// SurveyRepository 问卷存储库
type SurveyRepository struct {
	base
}

// NewSurveyRepository 创建问卷存储库
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *SurveyRepository) WithTx(tx *sqlx.Tx) *SurveyRepository {
	return &SurveyRepository{base: base{q: tx}}
}

// Create 创建问卷
func (r *SurveyRepository) Create(ctx context.Context, s *model.Survey) error {
	now := time.Now()
	if s.Status == "" {
		s.Status = model.SurveyStatusDraft
	}
	if len(s.Questions) == 0 {
		s.Questions = types.JSONText("[]")
	}
	id, err := r.insert(ctx, `INSERT INTO surveys (title, description, type, category, status, target_participants,
		current_participants, completed_count, reward, duration, url, questions, latitude, longitude, radius,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Title, s.Description, s.Type, s.Category, s.Status, s.TargetParticipants,
		s.CurrentParticipants, s.CompletedCount, s.Reward, s.Duration, s.URL, s.Questions, s.Latitude, s.Longitude, s.Radius,
		now, now)
	if err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

// GetByID 根据ID获取问卷
func (r *SurveyRepository) GetByID(ctx context.Context, id int64) (*model.Survey, error) {
	var s model.Survey
	if err := r.get(ctx, &s, "SELECT * FROM surveys WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgSurveyNotFound)
	}
	return &s, nil
}

// List 分页获取问卷，status 为空时不过滤
func (r *SurveyRepository) List(ctx context.Context, status string, p Page) ([]model.Survey, int64, error) {
	where := ""
	var args []interface{}
	if status != "" {
		where = " WHERE status = ?"
		args = append(args, status)
	}
	total, err := r.count(ctx, "SELECT COUNT(*) FROM surveys"+where, args...)
	if err != nil {
		return nil, 0, err
	}
	surveys := []model.Survey{}
	err = r.selectAll(ctx, &surveys, "SELECT * FROM surveys"+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, p.Limit, p.Offset)...)
	return surveys, total, err
}

// Update 更新问卷，计数器不在此处修改
func (r *SurveyRepository) Update(ctx context.Context, s *model.Survey) error {
	s.UpdatedAt = time.Now()
	n, err := r.execAffected(ctx, `UPDATE surveys SET title = ?, description = ?, type = ?, category = ?, status = ?,
		target_participants = ?, reward = ?, duration = ?, url = ?, questions = ?, latitude = ?, longitude = ?, radius = ?,
		updated_at = ?, completed_at = ? WHERE id = ?`,
		s.Title, s.Description, s.Type, s.Category, s.Status,
		s.TargetParticipants, s.Reward, s.Duration, s.URL, s.Questions, s.Latitude, s.Longitude, s.Radius,
		s.UpdatedAt, s.CompletedAt, s.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgSurveyNotFound)
	}
	return nil
}

// Delete 删除问卷，作答记录级联删除
func (r *SurveyRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "surveys", id, constants.MsgSurveyNotFound)
}

// IncrementCompletion 记录一次完成
func (r *SurveyRepository) IncrementCompletion(ctx context.Context, id int64) error {
	_, err := r.exec(ctx, `UPDATE surveys SET completed_count = completed_count + 1,
		current_participants = current_participants + 1, updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// CountByStatus 按状态统计问卷数
func (r *SurveyRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return r.count(ctx, "SELECT COUNT(*) FROM surveys")
	}
	return r.count(ctx, "SELECT COUNT(*) FROM surveys WHERE status = ?", status)
}
