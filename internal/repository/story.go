package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// StoryRepository 故事存储库
type StoryRepository struct {
	base
}

// NewStoryRepository 创建故事存储库
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{base: base{q: db}}
}

// Create 创建故事
func (r *StoryRepository) Create(ctx context.Context, s *model.Story) error {
	s.CreatedAt = time.Now()
	if s.MediaType == "" {
		s.MediaType = "image"
	}
	id, err := r.insert(ctx, `INSERT INTO stories (title, description, media_url, media_file, media_type, is_active,
		view_count, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Title, s.Description, s.MediaURL, s.MediaFile, s.MediaType, s.IsActive, s.ViewCount, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetByID 根据ID获取故事
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*model.Story, error) {
	var s model.Story
	if err := r.get(ctx, &s, "SELECT * FROM stories WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgStoryNotFound)
	}
	return &s, nil
}

// List 分页获取全部故事
func (r *StoryRepository) List(ctx context.Context, p Page) ([]model.Story, int64, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM stories")
	if err != nil {
		return nil, 0, err
	}
	stories := []model.Story{}
	err = r.selectAll(ctx, &stories, "SELECT * FROM stories ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", p.Limit, p.Offset)
	return stories, total, err
}

// ListVisible 启用且未过期的故事
func (r *StoryRepository) ListVisible(ctx context.Context, now time.Time) ([]model.Story, error) {
	stories := []model.Story{}
	err := r.selectAll(ctx, &stories, `SELECT * FROM stories
		WHERE is_active = ? AND (expires_at IS NULL OR expires_at > ?)
		ORDER BY created_at DESC, id DESC`, true, now)
	return stories, err
}

// Update 更新故事
func (r *StoryRepository) Update(ctx context.Context, s *model.Story) error {
	n, err := r.execAffected(ctx, `UPDATE stories SET title = ?, description = ?, media_url = ?, media_file = ?,
		media_type = ?, is_active = ?, expires_at = ? WHERE id = ?`,
		s.Title, s.Description, s.MediaURL, s.MediaFile, s.MediaType, s.IsActive, s.ExpiresAt, s.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgStoryNotFound)
	}
	return nil
}

// Delete 删除故事
func (r *StoryRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "stories", id, constants.MsgStoryNotFound)
}

// IncrementView 浏览数加一
func (r *StoryRepository) IncrementView(ctx context.Context, id int64) error {
	n, err := r.execAffected(ctx, "UPDATE stories SET view_count = view_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgStoryNotFound)
	}
	return nil
}

// DeactivateExpired 停用已过期的故事，返回停用数量
func (r *StoryRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.execAffected(ctx, "UPDATE stories SET is_active = ? WHERE is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?",
		false, true, now)
}
