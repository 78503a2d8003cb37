package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/model"
)

// RedemptionRepository 兑换记录存储库
type RedemptionRepository struct {
	base
}

// NewRedemptionRepository 创建兑换记录存储库
func NewRedemptionRepository(db *sqlx.DB) *RedemptionRepository {
	return &RedemptionRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *RedemptionRepository) WithTx(tx *sqlx.Tx) *RedemptionRepository {
	return &RedemptionRepository{base: base{q: tx}}
}

// Create 写入兑换记录
func (r *RedemptionRepository) Create(ctx context.Context, rd *model.Redemption) error {
	rd.CreatedAt = time.Now()
	id, err := r.insert(ctx, `INSERT INTO redemptions (order_no, product_id, user_id, size, color, quantity, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rd.OrderNo, rd.ProductID, rd.UserID, rd.Size, rd.Color, rd.Quantity, rd.Points, rd.CreatedAt)
	if err != nil {
		return err
	}
	rd.ID = id
	return nil
}

// List 分页获取兑换记录，userID 非空时只返回该用户的记录
func (r *RedemptionRepository) List(ctx context.Context, userID *int64, p Page) ([]model.Redemption, int64, error) {
	where := ""
	var args []interface{}
	if userID != nil {
		where = " WHERE user_id = ?"
		args = append(args, *userID)
	}

	total, err := r.count(ctx, "SELECT COUNT(*) FROM redemptions"+where, args...)
	if err != nil {
		return nil, 0, err
	}
	items := []model.Redemption{}
	err = r.selectAll(ctx, &items, "SELECT * FROM redemptions"+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, p.Limit, p.Offset)...)
	return items, total, err
}
