package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"kazanion/internal/constants"
	"kazanion/internal/model"
)

// ErrVersionConflict 乐观锁版本不匹配，行已被其他请求修改
var ErrVersionConflict = errors.New("repository: version conflict")

// ProductFilter 商品列表筛选条件
type ProductFilter struct {
	StoreID    *int64
	Category   string
	ActiveOnly bool
}

// ProductRepository 商品存储库
type ProductRepository struct {
	base
}

// NewProductRepository 创建商品存储库
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{base: base{q: db}}
}

// WithTx 返回在事务中操作的存储库
func (r *ProductRepository) WithTx(tx *sqlx.Tx) *ProductRepository {
	return &ProductRepository{base: base{q: tx}}
}

// Create 创建商品，总库存由规格推导
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	now := time.Now()
	p.SyncStock()
	p.Version = 1
	if p.Variants == nil {
		p.Variants = model.Variants{}
	}
	if p.Images == nil {
		p.Images = model.StringList{}
	}
	id, err := r.insert(ctx, `INSERT INTO products (store_id, name, description, price, reward_points, stock, images,
		category, is_active, variants, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.StoreID, p.Name, p.Description, p.Price, p.RewardPoints, p.Stock, p.Images,
		p.Category, p.IsActive, p.Variants, p.Version, now, now)
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetByID 根据ID获取商品
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := r.get(ctx, &p, "SELECT * FROM products WHERE id = ?", id); err != nil {
		return nil, notFound(err, constants.MsgProductNotFound)
	}
	p.SyncStock()
	return &p, nil
}

// List 分页获取商品
func (r *ProductRepository) List(ctx context.Context, f ProductFilter, p Page) ([]model.Product, int64, error) {
	where := " WHERE 1 = 1"
	var args []interface{}
	if f.StoreID != nil {
		where += " AND store_id = ?"
		args = append(args, *f.StoreID)
	}
	if f.Category != "" {
		where += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.ActiveOnly {
		where += " AND is_active = ?"
		args = append(args, true)
	}

	total, err := r.count(ctx, "SELECT COUNT(*) FROM products"+where, args...)
	if err != nil {
		return nil, 0, err
	}

	products := []model.Product{}
	err = r.selectAll(ctx, &products, "SELECT * FROM products"+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].SyncStock()
	}
	return products, total, nil
}

// Update 按读取时的版本号更新商品，版本不匹配返回 ErrVersionConflict
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	p.SyncStock()
	p.UpdatedAt = time.Now()
	n, err := r.execAffected(ctx, `UPDATE products SET store_id = ?, name = ?, description = ?, price = ?, reward_points = ?,
		stock = ?, images = ?, category = ?, is_active = ?, variants = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		p.StoreID, p.Name, p.Description, p.Price, p.RewardPoints,
		p.Stock, p.Images, p.Category, p.IsActive, p.Variants, p.UpdatedAt,
		p.ID, p.Version)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	p.Version++
	return nil
}

// UpdateVariants 只更新规格和推导出的总库存，同样使用版本号校验
func (r *ProductRepository) UpdateVariants(ctx context.Context, id, version int64, variants model.Variants) error {
	n, err := r.execAffected(ctx,
		"UPDATE products SET variants = ?, stock = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?",
		variants, variants.TotalStock(), time.Now(), id, version)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete 删除商品
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "products", id, constants.MsgProductNotFound)
}
