package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// MapTaskRepository 地图任务存储库
type MapTaskRepository struct {
	base
}

// NewMapTaskRepository 创建地图任务存储库
func NewMapTaskRepository(db *sqlx.DB) *MapTaskRepository {
	return &MapTaskRepository{base: base{q: db}}
}

// Create 创建地图任务
func (r *MapTaskRepository) Create(ctx context.Context, t *model.MapTask) error {
	t.CreatedAt = time.Now()
	if t.Status == "" {
		t.Status = model.MapTaskStatusActive
	}
	if t.Radius == 0 {
		t.Radius = 100
	}
	id, err := r.insert(ctx, `INSERT INTO map_tasks (title, description, latitude, longitude, radius, reward, status,
		completed_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Latitude, t.Longitude, t.Radius, t.Reward, t.Status, t.CompletedCount, t.CreatedAt)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// GetByID 根据ID获取地图任务
func (r *MapTaskRepository) GetByID(ctx context.Context, id int64) (*model.MapTask, error) {
	var t model.MapTask
	if err := r.get(ctx, &t, "SELECT * FROM map_tasks WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgMapTaskNotFound)
	}
	return &t, nil
}

// List 分页获取地图任务
func (r *MapTaskRepository) List(ctx context.Context, status string, p Page) ([]model.MapTask, int64, error) {
	where := ""
	var args []interface{}
	if status != "" {
		where = " WHERE status = ?"
		args = append(args, status)
	}
	total, err := r.count(ctx, "SELECT COUNT(*) FROM map_tasks"+where, args...)
	if err != nil {
		return nil, 0, err
	}
	tasks := []model.MapTask{}
	err = r.selectAll(ctx, &tasks, "SELECT * FROM map_tasks"+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, p.Limit, p.Offset)...)
	return tasks, total, err
}

// Update 更新地图任务
func (r *MapTaskRepository) Update(ctx context.Context, t *model.MapTask) error {
	n, err := r.execAffected(ctx, `UPDATE map_tasks SET title = ?, description = ?, latitude = ?, longitude = ?,
		radius = ?, reward = ?, status = ? WHERE id = ?`,
		t.Title, t.Description, t.Latitude, t.Longitude, t.Radius, t.Reward, t.Status, t.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgMapTaskNotFound)
	}
	return nil
}

// Delete 删除地图任务
func (r *MapTaskRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "map_tasks", id, constants.MsgMapTaskNotFound)
}
