package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// AdminUserRepository 管理员存储库
type AdminUserRepository struct {
	base
}

// NewAdminUserRepository 创建管理员存储库
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{base: base{q: db}}
}

// Create 创建管理员，Password 须已是哈希
func (r *AdminUserRepository) Create(ctx context.Context, a *model.AdminUser) error {
	now := time.Now()
	if a.Role == "" {
		a.Role = "admin"
	}
	id, err := r.insert(ctx, `INSERT INTO admin_users (email, username, password, name, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Email, a.Username, a.Password, a.Name, a.Role, a.IsActive, now, now)
	if err != nil {
		return err
	}
	a.ID = id
	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

// GetByID 根据ID获取管理员
func (r *AdminUserRepository) GetByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	var a model.AdminUser
	if err := r.get(ctx, &a, "SELECT * FROM admin_users WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgAdminNotFound)
	}
	return &a, nil
}

// GetByLogin 根据邮箱或用户名获取管理员
func (r *AdminUserRepository) GetByLogin(ctx context.Context, identifier string) (*model.AdminUser, error) {
	var a model.AdminUser
	err := r.get(ctx, &a, "SELECT * FROM admin_users WHERE email = ? OR username = ? LIMIT 1", identifier, identifier)
	if err != nil {
		return nil, notFound(err, constants.MsgInvalidCredentials)
	}
	return &a, nil
}

// Taken 邮箱或用户名是否被除 exceptID 以外的管理员使用
func (r *AdminUserRepository) Taken(ctx context.Context, email, username string, exceptID int64) (bool, error) {
	n, err := r.count(ctx, "SELECT COUNT(*) FROM admin_users WHERE (email = ? OR username = ?) AND id <> ?",
		email, username, exceptID)
	return n > 0, err
}

// List 分页获取管理员
func (r *AdminUserRepository) List(ctx context.Context, p Page) ([]model.AdminUser, int64, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM admin_users")
	if err != nil {
		return nil, 0, err
	}
	admins := []model.AdminUser{}
	err = r.selectAll(ctx, &admins, "SELECT * FROM admin_users ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", p.Limit, p.Offset)
	return admins, total, err
}

// Update 更新管理员
func (r *AdminUserRepository) Update(ctx context.Context, a *model.AdminUser) error {
	a.UpdatedAt = time.Now()
	n, err := r.execAffected(ctx, `UPDATE admin_users SET email = ?, username = ?, password = ?, name = ?, role = ?,
		is_active = ?, updated_at = ? WHERE id = ?`,
		a.Email, a.Username, a.Password, a.Name, a.Role, a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgAdminNotFound)
	}
	return nil
}

// Delete 删除管理员
func (r *AdminUserRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "admin_users", id, constants.MsgAdminNotFound)
}

// TouchLogin 记录最后登录时间
func (r *AdminUserRepository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.exec(ctx, "UPDATE admin_users SET last_login = ? WHERE id = ?", at, id)
	return err
}
