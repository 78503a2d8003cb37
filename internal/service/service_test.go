package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"kazanion/config"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/pkg/cache"
	"kazanion/pkg/database"
	"kazanion/pkg/logger"
)

// testEnv 基于内存SQLite的服务依赖
type testEnv struct {
	db    *sqlx.DB
	tx    *repository.Transactor
	cache *cache.Cache
	log   *logger.Logger

	users         *repository.UserRepository
	products      *repository.ProductRepository
	stores        *repository.StoreRepository
	redemptions   *repository.RedemptionRepository
	surveys       *repository.SurveyRepository
	responses     *repository.SurveyResponseRepository
	analytics     *repository.AnalyticsRepository
	notifications *repository.NotificationRepository
	settings      *repository.SettingRepository
	admins        *repository.AdminUserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewConnection(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	return &testEnv{
		db:            db,
		tx:            repository.NewTransactor(db),
		cache:         cache.New(nil, "test:", 0),
		log:           logger.NewNop(),
		users:         repository.NewUserRepository(db),
		products:      repository.NewProductRepository(db),
		stores:        repository.NewStoreRepository(db),
		redemptions:   repository.NewRedemptionRepository(db),
		surveys:       repository.NewSurveyRepository(db),
		responses:     repository.NewSurveyResponseRepository(db),
		analytics:     repository.NewAnalyticsRepository(db),
		notifications: repository.NewNotificationRepository(db),
		settings:      repository.NewSettingRepository(db),
		admins:        repository.NewAdminUserRepository(db),
	}
}

func (e *testEnv) redemptionService() *RedemptionService {
	return NewRedemptionService(e.tx, e.products, e.users, e.redemptions, e.cache, e.log)
}

func (e *testEnv) analyticsService() *AnalyticsService {
	return NewAnalyticsService(e.tx, e.analytics, e.surveys, e.users, e.cache, e.log)
}

func (e *testEnv) surveyService() *SurveyService {
	return NewSurveyService(e.tx, e.surveys, e.responses, e.users, e.analyticsService(), nil, e.cache, e.log)
}

func (e *testEnv) seedUser(t *testing.T, username string, balance int64) *model.User {
	t.Helper()
	u := &model.User{
		Email:         username + "@example.com",
		Username:      username,
		Password:      "x",
		Name:          username,
		IsActive:      true,
		TotalEarnings: decimal.NewFromInt(balance),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// seedTShirt 商品 T-Shirt，规格 {M, Black, 5}，20积分
func (e *testEnv) seedTShirt(t *testing.T) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:         "T-Shirt",
		Price:        decimal.NewFromInt(199),
		RewardPoints: decimal.NewFromInt(20),
		IsActive:     true,
		Variants:     model.Variants{{Size: "M", Color: "Black", Stock: 5}},
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}
