package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/config"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/types"
	"kazanion/pkg/database"
	"kazanion/pkg/logger"
	"kazanion/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	svc    *Services
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.NewConnection(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	log := logger.NewNop()
	tokens := token.NewManager("test-secret", time.Hour)
	svc := NewServices(Deps{DB: db, Tokens: tokens, Logger: log})

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"*"}}}
	return &testServer{router: SetupRouter(cfg, log, svc, nil, tokens), svc: svc}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func strPtr(s string) *string { return &s }

// loginAdmin 创建管理员并保存令牌
func (s *testServer) loginAdmin(t *testing.T) {
	t.Helper()
	_, err := s.svc.AdminUser.Create(context.Background(), types.AdminUserRequest{
		Email:    strPtr("panel@kazanion.com"),
		Username: strPtr("panel"),
		Password: strPtr("secret123"),
		Name:     strPtr("Panel"),
	})
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/auth/admin/login", gin.H{"username": "panel", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session struct {
		Token string `json:"token"`
	}
	decode(t, w, &session)
	require.NotEmpty(t, session.Token)
	s.token = session.Token
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/admin/login", gin.H{"username": "nobody", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.loginAdmin(t)
	w = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"totalCount":0}`, w.Body.String())
}

func TestEarnAndRedeemFlow(t *testing.T) {
	s := newTestServer(t)
	s.loginAdmin(t)

	// 商品
	w := s.do(t, http.MethodPost, "/api/products", gin.H{
		"name":         "T-Shirt",
		"rewardPoints": 20,
		"variants":     []gin.H{{"size": "M", "color": "Black", "stock": 5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product model.Product
	decode(t, w, &product)
	assert.Equal(t, 5, product.Stock)

	// 用户
	w = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "ayse@example.com",
		"username": "ayse",
		"password": "secret1",
		"name":     "Ayşe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var registered struct {
		User model.User `json:"user"`
	}
	decode(t, w, &registered)
	userID := registered.User.ID

	w = s.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    "ayse@example.com",
		"username": "ayse2",
		"password": "secret1",
		"name":     "Ayşe",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 问卷奖励50积分
	w = s.do(t, http.MethodPost, "/api/surveys", gin.H{
		"title":  "Kahve alışkanlıkları",
		"type":   "general",
		"status": "active",
		"reward": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var survey model.Survey
	decode(t, w, &survey)

	completePath := fmt.Sprintf("/api/mobile/surveys/%d/complete", survey.ID)
	w = s.do(t, http.MethodPost, completePath, gin.H{"userId": userID, "responses": gin.H{"1": "Evet"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var completed struct {
		User model.User `json:"user"`
	}
	decode(t, w, &completed)
	assert.True(t, decimal.NewFromInt(50).Equal(completed.User.TotalEarnings))

	w = s.do(t, http.MethodPost, completePath, gin.H{"userId": userID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 兑换
	purchasePath := fmt.Sprintf("/api/products/%d/purchase", product.ID)
	w = s.do(t, http.MethodPost, purchasePath, gin.H{"userId": userID, "size": "M", "color": "Black", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result model.PurchaseResult
	decode(t, w, &result)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Product.Variants[0].Stock)
	assert.Equal(t, 3, result.Product.Stock)
	assert.True(t, decimal.NewFromInt(10).Equal(result.User.TotalEarnings))

	cases := []struct {
		name    string
		path    string
		body    gin.H
		code    int
		message string
	}{
		{"missing color", purchasePath, gin.H{"userId": userID, "size": "M"}, http.StatusBadRequest, constants.MsgPurchaseFieldsRequired},
		{"unknown product", "/api/products/999/purchase", gin.H{"userId": userID, "size": "M", "color": "Black"}, http.StatusNotFound, constants.MsgProductNotFound},
		{"unknown variant", purchasePath, gin.H{"userId": userID, "size": "L", "color": "Black"}, http.StatusBadRequest, constants.MsgVariantNotFound},
		{"not enough stock", purchasePath, gin.H{"userId": userID, "size": "M", "color": "Black", "quantity": 4}, http.StatusBadRequest, constants.MsgInsufficientStock},
		{"unknown user", purchasePath, gin.H{"userId": 999, "size": "M", "color": "Black"}, http.StatusNotFound, constants.MsgUserNotFound},
		{"not enough points", purchasePath, gin.H{"userId": userID, "size": "M", "color": "Black"}, http.StatusBadRequest, constants.MsgInsufficientBalance},
		{"bad id", "/api/products/abc/purchase", gin.H{"userId": userID, "size": "M", "color": "Black"}, http.StatusBadRequest, constants.MsgInvalidID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.code, w.Code)
			var body struct {
				Message string `json:"message"`
			}
			decode(t, w, &body)
			assert.Equal(t, tc.message, body.Message)
		})
	}

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/redemptions?userId=%d", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var redemptions struct {
		Items      []model.Redemption `json:"items"`
		TotalCount int64              `json:"totalCount"`
	}
	decode(t, w, &redemptions)
	assert.EqualValues(t, 1, redemptions.TotalCount)
	assert.Equal(t, 2, redemptions.Items[0].Quantity)

	w = s.do(t, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board struct {
		Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
	}
	decode(t, w, &board)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, "gold", board.Leaderboard[0].Badge)
}

func TestCRUDStatusCodes(t *testing.T) {
	s := newTestServer(t)
	s.loginAdmin(t)

	w := s.do(t, http.MethodPost, "/api/stores", gin.H{"name": "Merkez"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var store model.Store
	decode(t, w, &store)

	path := fmt.Sprintf("/api/stores/%d", store.ID)
	w = s.do(t, http.MethodPut, path, gin.H{"description": "Kadıköy"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &store)
	assert.Equal(t, "Merkez", store.Name)
	assert.Equal(t, "Kadıköy", store.Description)

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/stores?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/settings", gin.H{"settings": []gin.H{{"key": "maintenance", "value": "off"}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalCount":1`)

	w = s.do(t, http.MethodGet, "/api/analytics?startDate=2026-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Redis    string `json:"redis"`
	}
	decode(t, w, &status)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "up", status.Database)
	assert.Equal(t, "disabled", status.Redis)
}

func TestNotificationTypes(t *testing.T) {
	s := newTestServer(t)
	s.loginAdmin(t)

	for _, kind := range []string{"info", "success", "warning", "error", "promotion", "system"} {
		t.Run(kind, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/notifications", gin.H{
				"title":   "Duyuru",
				"message": "Yeni anket yayında",
				"type":    kind,
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			var n model.Notification
			decode(t, w, &n)
			assert.Equal(t, kind, n.Type)
		})
	}

	w := s.do(t, http.MethodPost, "/api/notifications", gin.H{"message": "x", "type": "promo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentAdminSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.loginAdmin(t)
	w = s.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me model.AdminUser
	decode(t, w, &me)
	assert.Equal(t, "panel", me.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	// 令牌仍有效，但账号被停用
	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin-users/%d", me.ID), gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
