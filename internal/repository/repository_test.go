package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/config"
	"kazanion/internal/apperr"
	"kazanion/internal/model"
	"kazanion/pkg/database"
)

// newTestDB 创建已迁移的内存数据库
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewConnection(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, username string, balance int64) *model.User {
	t.Helper()
	u := &model.User{
		Email:         username + "@example.com",
		Username:      username,
		Password:      "hash",
		Name:          username,
		IsActive:      true,
		TotalEarnings: decimal.NewFromInt(balance),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func TestUserDebitBalanceIsConditional(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	u := seedUser(t, db, "ayse", 50)

	ok, err := repo.DebitBalance(ctx, u.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DebitBalance(ctx, u.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.False(t, ok, "balance 10 cannot cover 40")

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalEarnings.Equal(decimal.NewFromInt(10)))
}

func TestUserGetMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewUserRepository(db).GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = NewUserRepository(db).Delete(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserListAndUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	a := seedUser(t, db, "ali", 0)
	seedUser(t, db, "veli", 0)

	users, total, err := repo.List(ctx, Page{Offset: 0, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)

	taken, err := repo.UsernameTaken(ctx, "veli", a.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameTaken(ctx, "ali", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	dup := &model.User{Email: "ali@example.com", Username: "other", Password: "x", Name: "x"}
	err = repo.Create(ctx, dup)
	assert.True(t, IsUniqueViolation(err))
}

func TestProductVersionCheck(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	p := &model.Product{
		Name:         "T-Shirt",
		RewardPoints: decimal.NewFromInt(20),
		IsActive:     true,
		Variants:     model.Variants{{Size: "M", Color: "Black", Stock: 5}, {Size: "S", Color: "Black", Stock: 1}},
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, int64(1), p.Version)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Variants, got.Variants)

	v := got.Variants.Clone()
	v[0].Stock = 3
	require.NoError(t, repo.UpdateVariants(ctx, p.ID, got.Version, v))

	// 旧版本号再次写入失败
	err = repo.UpdateVariants(ctx, p.ID, got.Version, v)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)
	assert.Equal(t, int64(2), got.Version)

	got.Name = "Tişört"
	require.NoError(t, repo.Update(ctx, got))
	assert.Equal(t, int64(3), got.Version)
}

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := &model.Store{Name: "Merch", IsActive: true}
	require.NoError(t, NewStoreRepository(db).Create(ctx, store))

	repo := NewProductRepository(db)
	require.NoError(t, repo.Create(ctx, &model.Product{Name: "Mug", StoreID: &store.ID, Category: "home", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Product{Name: "Cap", Category: "wear", IsActive: false}))

	items, total, err := repo.List(ctx, ProductFilter{StoreID: &store.ID}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Mug", items[0].Name)

	_, total, err = repo.List(ctx, ProductFilter{ActiveOnly: true}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 删除商店后商品保留，store_id 置空
	require.NoError(t, NewStoreRepository(db).Delete(ctx, store.ID))
	items, _, err = repo.List(ctx, ProductFilter{Category: "home"}, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].StoreID)
}

func TestTransactorRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "mehmet", 30)

	err := NewTransactor(db).WithinTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := NewUserRepository(db).WithTx(tx).DebitBalance(ctx, u.ID, decimal.NewFromInt(30))
		require.NoError(t, err)
		require.True(t, ok)
		return apperr.Conflict("abort")
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := NewUserRepository(db).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalEarnings.Equal(decimal.NewFromInt(30)))
}

func TestRedemptionListByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRedemptionRepository(db)

	for i, uid := range []int64{1, 2, 1} {
		rd := &model.Redemption{
			OrderNo: "RDM" + string(rune('A'+i)), ProductID: 9, UserID: uid,
			Size: "M", Color: "Black", Quantity: 1, Points: decimal.NewFromInt(20),
		}
		require.NoError(t, repo.Create(ctx, rd))
	}

	uid := int64(1)
	items, total, err := repo.List(ctx, &uid, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	_, total, err = repo.List(ctx, nil, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestStoryVisibilityAndExpiry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStoryRepository(db)
	now := time.Now()
	past := now.Add(-2 * time.Hour)
	future := now.Add(2 * time.Hour)

	require.NoError(t, repo.Create(ctx, &model.Story{Title: "old", IsActive: true, ExpiresAt: &past}))
	require.NoError(t, repo.Create(ctx, &model.Story{Title: "new", IsActive: true, ExpiresAt: &future}))
	require.NoError(t, repo.Create(ctx, &model.Story{Title: "forever", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Story{Title: "off", IsActive: false}))

	visible, err := repo.ListVisible(ctx, now)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	n, err := repo.DeactivateExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.IncrementView(ctx, visible[0].ID))
	got, err := repo.GetByID(ctx, visible[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
}

func TestSettingUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSettingRepository(db)

	require.NoError(t, repo.Upsert(ctx, &model.Setting{Key: "min_payout", Value: "100"}))
	require.NoError(t, repo.Upsert(ctx, &model.Setting{Key: "min_payout", Value: "150", Description: "TL"}))
	require.NoError(t, repo.Upsert(ctx, &model.Setting{Key: "app_name", Value: "Kazanion"}))

	settings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "app_name", settings[0].Key)
	assert.Equal(t, "150", settings[1].Value)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), apperr.ErrNotFound)
}

func TestSurveyHistoryAndDashboard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "zeynep", 15)

	surveys := NewSurveyRepository(db)
	s1 := &model.Survey{Title: "Kahve", Type: "survey", Status: model.SurveyStatusActive, Reward: decimal.NewFromInt(5)}
	s2 := &model.Survey{Title: "Çay", Type: "survey", Status: model.SurveyStatusDraft, Reward: decimal.NewFromInt(3)}
	require.NoError(t, surveys.Create(ctx, s1))
	require.NoError(t, surveys.Create(ctx, s2))

	responses := NewSurveyResponseRepository(db)
	done := time.Now()
	require.NoError(t, responses.Create(ctx, &model.SurveyResponse{
		SurveyID: s1.ID, UserID: u.ID, Responses: types.JSONText(`{"q1":"evet"}`), IsCompleted: true, CompletedAt: &done,
	}))
	require.NoError(t, responses.Create(ctx, &model.SurveyResponse{SurveyID: s2.ID, UserID: u.ID}))

	history, err := responses.History(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	found, err := responses.Find(ctx, s1.ID, u.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsCompleted)

	missing, err := responses.Find(ctx, s1.ID, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	stats, err := NewAnalyticsRepository(db).DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalSurveys)
	assert.Equal(t, 1, stats.ActiveSurveys)
	assert.Equal(t, 1, stats.CompletedSurveys)
	assert.True(t, stats.TotalEarnings.Equal(decimal.NewFromInt(15)))
}

func TestAnalyticsSnapshotRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)
	day := time.Date(2026, 3, 10, 23, 55, 0, 0, time.UTC)

	require.NoError(t, repo.SaveSnapshot(ctx, &model.Analytics{Date: day, TotalUsers: 1}))
	require.NoError(t, repo.SaveSnapshot(ctx, &model.Analytics{Date: day, TotalUsers: 2}))
	require.NoError(t, repo.SaveSnapshot(ctx, &model.Analytics{Date: day.AddDate(0, 0, 1), TotalUsers: 3}))

	items, err := repo.ListRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].TotalUsers)

	items, err = repo.ListRange(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
