package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
)

func purchase(userID int64, size, color string, quantity *int) types.PurchaseRequest {
	return types.PurchaseRequest{UserID: &userID, Size: size, Color: color, Quantity: quantity}
}

func intPtr(v int) *int { return &v }

// assertUnchanged 失败的兑换不能修改库存、余额或写入记录
func assertUnchanged(t *testing.T, env *testEnv, productID, userID int64, stock int, balance int64) {
	t.Helper()
	ctx := context.Background()
	p, err := env.products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, stock, p.Variants[0].Stock)
	assert.Equal(t, stock, p.Stock)

	u, err := env.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, u.TotalEarnings.Equal(decimal.NewFromInt(balance)), "balance %s", u.TotalEarnings)

	_, total, err := env.redemptions.List(ctx, nil, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPurchaseDecrementsStockAndBalance(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "ayse", 50)

	res, err := env.redemptionService().Purchase(context.Background(), p.ID, purchase(u.ID, "M", "Black", intPtr(2)))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Product.Variants[0].Stock)
	assert.Equal(t, 3, res.Product.Stock)
	assert.True(t, res.User.TotalEarnings.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.Redemption.Points.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 2, res.Redemption.Quantity)
	assert.NotEmpty(t, res.Redemption.OrderNo)
}

func TestPurchaseDefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "ali", 50)

	res, err := env.redemptionService().Purchase(context.Background(), p.ID, purchase(u.ID, "M", "Black", nil))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Product.Variants[0].Stock)
	assert.True(t, res.User.TotalEarnings.Equal(decimal.NewFromInt(30)))
}

func TestPurchaseFailures(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		product func(p int64) int64
		req     func(userID int64) types.PurchaseRequest
		kind    error
		msg     string
	}{
		{
			name:    "missing size",
			balance: 50,
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "", "Black", nil) },
			kind:    apperr.ErrValidation,
			msg:     constants.MsgPurchaseFieldsRequired,
		},
		{
			name:    "missing user",
			balance: 50,
			req: func(int64) types.PurchaseRequest {
				return types.PurchaseRequest{Size: "M", Color: "Black"}
			},
			kind: apperr.ErrValidation,
			msg:  constants.MsgPurchaseFieldsRequired,
		},
		{
			name:    "zero quantity",
			balance: 50,
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "M", "Black", intPtr(0)) },
			kind:    apperr.ErrValidation,
			msg:     constants.MsgInvalidQuantity,
		},
		{
			name:    "unknown product",
			balance: 50,
			product: func(int64) int64 { return 9999 },
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "M", "Black", nil) },
			kind:    apperr.ErrNotFound,
			msg:     constants.MsgProductNotFound,
		},
		{
			name:    "unknown variant",
			balance: 50,
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "L", "Black", nil) },
			kind:    apperr.ErrValidation,
			msg:     constants.MsgVariantNotFound,
		},
		{
			name:    "quantity above stock",
			balance: 500,
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "M", "Black", intPtr(6)) },
			kind:    apperr.ErrInsufficientStock,
			msg:     constants.MsgInsufficientStock,
		},
		{
			name:    "unknown user",
			balance: 50,
			req:     func(int64) types.PurchaseRequest { return purchase(424242, "M", "Black", nil) },
			kind:    apperr.ErrNotFound,
			msg:     constants.MsgUserNotFound,
		},
		{
			name:    "balance below cost",
			balance: 10,
			req:     func(uid int64) types.PurchaseRequest { return purchase(uid, "M", "Black", intPtr(1)) },
			kind:    apperr.ErrInsufficientBalance,
			msg:     constants.MsgInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := env.seedTShirt(t)
			u := env.seedUser(t, "zeynep", tt.balance)

			productID := p.ID
			if tt.product != nil {
				productID = tt.product(p.ID)
			}
			res, err := env.redemptionService().Purchase(context.Background(), productID, tt.req(u.ID))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.msg, apperr.MessageOf(err, ""))

			assertUnchanged(t, env, p.ID, u.ID, 5, tt.balance)
		})
	}
}

func TestPurchaseIsNotIdempotent(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "mehmet", 50)
	svc := env.redemptionService()
	ctx := context.Background()

	first, err := svc.Purchase(ctx, p.ID, purchase(u.ID, "M", "Black", intPtr(1)))
	require.NoError(t, err)
	second, err := svc.Purchase(ctx, p.ID, purchase(u.ID, "M", "Black", intPtr(1)))
	require.NoError(t, err)

	assert.NotEqual(t, first.Redemption.OrderNo, second.Redemption.OrderNo)
	assert.Equal(t, 3, second.Product.Variants[0].Stock)
	assert.True(t, second.User.TotalEarnings.Equal(decimal.NewFromInt(10)))

	uid := u.ID
	_, total, err := svc.List(ctx, &uid, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "fatma", 1000)
	svc := env.redemptionService()
	ctx := context.Background()

	const buyers = 12
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, p.ID, purchase(u.ID, "M", "Black", intPtr(1)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperr.KindOf(err) == apperr.KindInsufficientStock:
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, buyers-5, outOfStock)

	got, err := env.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Variants[0].Stock)
	assert.Equal(t, got.Variants.TotalStock(), got.Stock)

	user, err := env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, user.TotalEarnings.Equal(decimal.NewFromInt(900)))
}

// bumpVersion 在事务内抢先修改商品版本，模拟另一个并发兑换
func bumpVersion(calls *int, conflicts int) func(ctx context.Context, tx *sqlx.Tx, productID int64) error {
	return func(ctx context.Context, tx *sqlx.Tx, productID int64) error {
		*calls++
		if *calls > conflicts {
			return nil
		}
		_, err := tx.ExecContext(ctx, tx.Rebind("UPDATE products SET version = version + 1 WHERE id = ?"), productID)
		return err
	}
}

func TestPurchaseRetriesAfterVersionConflict(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "deniz", 50)

	calls := 0
	svc := env.redemptionService()
	svc.beforeWrite = bumpVersion(&calls, 1)

	res, err := svc.Purchase(context.Background(), p.ID, purchase(u.ID, "M", "Black", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 4, res.Product.Variants[0].Stock)
	assert.Equal(t, p.Version+1, res.Product.Version)
	assert.True(t, res.User.TotalEarnings.Equal(decimal.NewFromInt(30)))

	_, total, err := env.redemptions.List(context.Background(), nil, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestPurchaseGivesUpAfterMaxAttempts(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedTShirt(t)
	u := env.seedUser(t, "emre", 50)

	calls := 0
	svc := env.redemptionService()
	svc.beforeWrite = bumpVersion(&calls, defaultPurchaseAttempts)

	_, err := svc.Purchase(context.Background(), p.ID, purchase(u.ID, "M", "Black", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, constants.MsgPurchaseBusy, apperr.MessageOf(err, ""))
	assert.Equal(t, defaultPurchaseAttempts, calls)

	assertUnchanged(t, env, p.ID, u.ID, 5, 50)
	after, err := env.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Version, after.Version)
}

func TestPurchaseFreeProductKeepsBalance(t *testing.T) {
	env := newTestEnv(t)
	p := &model.Product{
		Name:         "Sticker",
		Price:        decimal.Zero,
		RewardPoints: decimal.Zero,
		IsActive:     true,
		Variants:     model.Variants{{Size: "S", Color: "White", Stock: 2}},
	}
	require.NoError(t, env.products.Create(context.Background(), p))
	u := env.seedUser(t, "zeynep", 0)

	res, err := env.redemptionService().Purchase(context.Background(), p.ID, purchase(u.ID, "S", "White", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Product.Variants[0].Stock)
	assert.True(t, res.User.TotalEarnings.IsZero())
	assert.True(t, res.Redemption.Points.IsZero())
}
