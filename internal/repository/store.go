package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// StoreRepository 商店存储库
type StoreRepository struct {
	base
}

// NewStoreRepository 创建商店存储库
func NewStoreRepository(db *sqlx.DB) *StoreRepository {
	return &StoreRepository{base: base{q: db}}
}

// Create 创建商店
func (r *StoreRepository) Create(ctx context.Context, s *model.Store) error {
	s.CreatedAt = time.Now()
	id, err := r.insert(ctx, "INSERT INTO stores (name, description, is_active, created_at) VALUES (?, ?, ?, ?)",
		s.Name, s.Description, s.IsActive, s.CreatedAt)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetByID 根据ID获取商店
func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var s model.Store
	if err := r.get(ctx, &s, "SELECT * FROM stores WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgStoreNotFound)
	}
	return &s, nil
}

// List 分页获取商店
func (r *StoreRepository) List(ctx context.Context, p Page) ([]model.Store, int64, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM stores")
	if err != nil {
		return nil, 0, err
	}
	stores := []model.Store{}
	err = r.selectAll(ctx, &stores, "SELECT * FROM stores ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", p.Limit, p.Offset)
	return stores, total, err
}

// Update 更新商店
func (r *StoreRepository) Update(ctx context.Context, s *model.Store) error {
	n, err := r.execAffected(ctx, "UPDATE stores SET name = ?, description = ?, is_active = ? WHERE id = ?",
		s.Name, s.Description, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(errNoRows, constants.MsgStoreNotFound)
	}
	return nil
}

// Delete 删除商店，所属商品的 store_id 置空
func (r *StoreRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "stores", id, constants.MsgStoreNotFound)
}
