package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// Store 商店，仅用于归类商品
type Store struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Variant 商品规格，由 (Size, Color) 唯一确定
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// Variants 有序的规格列表，以JSON存储在 products.variants
type Variants []Variant

// Value 实现 driver.Valuer
func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	return jsonValue([]Variant(v))
}

// Scan 实现 sql.Scanner
func (v *Variants) Scan(src interface{}) error {
	*v = Variants{}
	return scanJSON(src, (*[]Variant)(v))
}

// Find 返回匹配规格的下标，不存在时返回-1
func (v Variants) Find(size, color string) int {
	for i := range v {
		if v[i].Size == size && v[i].Color == color {
			return i
		}
	}
	return -1
}

// TotalStock 所有规格库存之和
func (v Variants) TotalStock() int {
	total := 0
	for _, item := range v {
		total += item.Stock
	}
	return total
}

// Clone 深拷贝
func (v Variants) Clone() Variants {
	out := make(Variants, len(v))
	copy(out, v)
	return out
}

// Product 积分商城商品，Price 仅用于展示，兑换按 RewardPoints 扣减余额
type Product struct {
	ID           int64           `db:"id" json:"id"`
	StoreID      *int64          `db:"store_id" json:"storeId"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	RewardPoints decimal.Decimal `db:"reward_points" json:"rewardPoints"`
	Stock        int             `db:"stock" json:"stock"`
	Images       StringList      `db:"images" json:"images"`
	Category     string          `db:"category" json:"category"`
	IsActive     bool            `db:"is_active" json:"isActive"`
	Variants     Variants        `db:"variants" json:"variants"`
	Version      int64           `db:"version" json:"version"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// SyncStock 有规格时总库存由规格库存推导
func (p *Product) SyncStock() {
	if len(p.Variants) > 0 {
		p.Stock = p.Variants.TotalStock()
	}
}

// Redemption 兑换记录
type Redemption struct {
	ID        int64           `db:"id" json:"id"`
	OrderNo   string          `db:"order_no" json:"orderNo"`
	ProductID int64           `db:"product_id" json:"productId"`
	UserID    int64           `db:"user_id" json:"userId"`
	Size      string          `db:"size" json:"size"`
	Color     string          `db:"color" json:"color"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Points    decimal.Decimal `db:"points" json:"points"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// PurchaseResult 兑换成功后的商品和用户
type PurchaseResult struct {
	Success    bool        `json:"success"`
	Product    *Product    `json:"product"`
	User       *User       `json:"user"`
	Redemption *Redemption `json:"redemption"`
}
