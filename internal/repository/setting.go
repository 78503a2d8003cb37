package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// SettingRepository 系统设置存储库
type SettingRepository struct {
	base
}

// NewSettingRepository 创建设置存储库
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *SettingRepository) WithTx(tx *sqlx.Tx) *SettingRepository {
	return &SettingRepository{base: base{q: tx}}
}

// List 获取全部设置，按键排序
func (r *SettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	settings := []model.Setting{}
	err := r.selectAll(ctx, &settings, "SELECT * FROM settings ORDER BY setting_key")
	return settings, err
}

// GetByKey 根据键获取设置
func (r *SettingRepository) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	if err := r.get(ctx, &s, "SELECT * FROM settings WHERE setting_key = ?", key); err != nil {
		return nil, notFound(err, constants.MsgSettingNotFound)
	}
	return &s, nil
}

// Upsert 键存在时更新，否则插入
func (r *SettingRepository) Upsert(ctx context.Context, s *model.Setting) error {
	now := time.Now()
	exists, err := r.count(ctx, "SELECT COUNT(*) FROM settings WHERE setting_key = ?", s.Key)
	if err != nil {
		return err
	}
	if exists > 0 {
		_, err = r.exec(ctx, "UPDATE settings SET setting_value = ?, description = ?, updated_at = ? WHERE setting_key = ?",
			s.Value, s.Description, now, s.Key)
		s.UpdatedAt = now
		return err
	}

	id, err := r.insert(ctx, `INSERT INTO settings (setting_key, setting_value, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`, s.Key, s.Value, s.Description, now, now)
	if err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

// Delete 根据键删除设置
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	n, err := r.execAffected(ctx, "DELETE FROM settings WHERE setting_key = ?", key)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgSettingNotFound)
	}
	return nil
}
