package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// NotificationRepository 通知存储库
type NotificationRepository struct {
	base
}

// NewNotificationRepository 创建通知存储库
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{base: base{q: db}}
}

// Create 创建通知
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.CreatedAt = time.Now()
	if n.Type == "" {
		n.Type = "info"
	}
	if n.TargetUserIDs == nil {
		n.TargetUserIDs = model.Int64List{}
	}
	id, err := r.insert(ctx, `INSERT INTO notifications (title, message, type, target_user_id, target_user_ids,
		is_read, is_sent, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Message, n.Type, n.TargetUserID, n.TargetUserIDs, n.IsRead, n.IsSent, n.CreatedAt)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// GetByID 根据ID获取通知
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	var n model.Notification
	if err := r.get(ctx, &n, "SELECT * FROM notifications WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgNotificationNotFound)
	}
	return &n, nil
}

// List 分页获取通知
func (r *NotificationRepository) List(ctx context.Context, p Page) ([]model.Notification, int64, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM notifications")
	if err != nil {
		return nil, 0, err
	}
	items := []model.Notification{}
	err = r.selectAll(ctx, &items, "SELECT * FROM notifications ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", p.Limit, p.Offset)
	return items, total, err
}

// Update 更新通知内容和已读状态
func (r *NotificationRepository) Update(ctx context.Context, n *model.Notification) error {
	res, err := r.execAffected(ctx, `UPDATE notifications SET title = ?, message = ?, type = ?, target_user_id = ?,
		target_user_ids = ?, is_read = ?, read_at = ? WHERE id = ?`,
		n.Title, n.Message, n.Type, n.TargetUserID, n.TargetUserIDs, n.IsRead, n.ReadAt, n.ID)
	if err != nil {
		return err
	}
	if res == 0 {
		return notFound(errNoRows, constants.MsgNotificationNotFound)
	}
	return nil
}

// Delete 删除通知
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "notifications", id, constants.MsgNotificationNotFound)
}

// MarkSent 标记为已发送
func (r *NotificationRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	_, err := r.exec(ctx, "UPDATE notifications SET is_sent = ?, sent_at = ? WHERE id = ?", true, at, id)
	return err
}
