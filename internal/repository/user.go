package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// UserRepository App用户存储库
type UserRepository struct {
	base
}

// NewUserRepository 创建用户存储库实例
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *UserRepository) WithTx(tx *sqlx.Tx) *UserRepository {
	return &UserRepository{base: base{q: tx}}
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	now := time.Now()
	if u.Status == "" {
		u.Status = model.UserStatusActive
	}
	if u.ConsentVersion == "" {
		u.ConsentVersion = "1.0"
	}
	id, err := r.insert(ctx, `INSERT INTO users (email, username, password, name, age, gender, city, latitude, longitude,
		ip_address, consent_version, total_earnings, completed_surveys, is_active, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.Password, u.Name, u.Age, u.Gender, u.City, u.Latitude, u.Longitude,
		u.IPAddress, u.ConsentVersion, u.TotalEarnings, u.CompletedSurveys, u.IsActive, u.Status, now, now)
	if err != nil {
		return err
	}
	u.ID = id
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.get(ctx, &u, "SELECT * FROM users WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgUserNotFound)
	}
	return &u, nil
}

// GetByLogin 根据邮箱或用户名获取用户
func (r *UserRepository) GetByLogin(ctx context.Context, identifier string) (*model.User, error) {
	var u model.User
	err := r.get(ctx, &u, "SELECT * FROM users WHERE email = ? OR username = ? LIMIT 1", identifier, identifier)
	if err != nil {
		return nil, notFound(err, constants.MsgInvalidCredentials)
	}
	return &u, nil
}

// ExistsByEmail 邮箱是否已注册
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.count(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email)
	return n > 0, err
}

// UsernameTaken 用户名是否被除 exceptID 以外的用户使用
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	n, err := r.count(ctx, "SELECT COUNT(*) FROM users WHERE username = ? AND id <> ?", username, exceptID)
	return n > 0, err
}

// List 分页获取用户，按注册时间倒序
func (r *UserRepository) List(ctx context.Context, p Page) ([]model.User, int64, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM users")
	if err != nil {
		return nil, 0, err
	}
	users := []model.User{}
	err = r.selectAll(ctx, &users, "SELECT * FROM users ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", p.Limit, p.Offset)
	return users, total, err
}

// ListByIDs 批量获取用户
func (r *UserRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	users := []model.User{}
	if len(ids) == 0 {
		return users, nil
	}
	query, args, err := sqlx.In("SELECT * FROM users WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	err = r.selectAll(ctx, &users, query, args...)
	return users, err
}

// ListActive 获取所有启用的用户
func (r *UserRepository) ListActive(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.selectAll(ctx, &users, "SELECT * FROM users WHERE is_active = ? ORDER BY id", true)
	return users, err
}

// Update 更新资料字段，余额和计数器只能通过专门的方法修改
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now()
	n, err := r.execAffected(ctx, `UPDATE users SET email = ?, username = ?, password = ?, name = ?, age = ?, gender = ?,
		city = ?, latitude = ?, longitude = ?, ip_address = ?, consent_version = ?, is_active = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, u.Username, u.Password, u.Name, u.Age, u.Gender,
		u.City, u.Latitude, u.Longitude, u.IPAddress, u.ConsentVersion, u.IsActive, u.Status, u.UpdatedAt,
		u.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgUserNotFound)
	}
	return nil
}

// Delete 删除用户
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "users", id, constants.MsgUserNotFound)
}

// DebitBalance 余额充足时扣减，返回是否扣减成功
func (r *UserRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	n, err := r.execAffected(ctx,
		"UPDATE users SET total_earnings = total_earnings - ?, updated_at = ? WHERE id = ? AND total_earnings >= ?",
		amount, time.Now(), id, amount)
	return n == 1, err
}

// CreditSurveyReward 问卷完成后增加余额和完成数
func (r *UserRepository) CreditSurveyReward(ctx context.Context, id int64, amount decimal.Decimal) error {
	n, err := r.execAffected(ctx,
		"UPDATE users SET total_earnings = total_earnings + ?, completed_surveys = completed_surveys + 1, updated_at = ? WHERE id = ?",
		amount, time.Now(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgUserNotFound)
	}
	return nil
}

// TouchLogin 记录最后登录时间
func (r *UserRepository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.exec(ctx, "UPDATE users SET last_login_at = ? WHERE id = ?", at, id)
	return err
}

// Leaderboard 按余额倒序的前 limit 名用户，零余额用户也参与排名
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries := []model.LeaderboardEntry{}
	err := r.selectAll(ctx, &entries, `SELECT id, username, name, city, total_earnings, completed_surveys
		FROM users ORDER BY total_earnings DESC, created_at DESC, id DESC LIMIT ?`, limit)
	return entries, err
}
