package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazanion/internal/apperr"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/async"
	"kazanion/pkg/email"
)

func TestProductCreateDerivesStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewProductService(env.products, env.stores, env.log)

	points := decimal.NewFromInt(30)
	variants := []types.VariantRequest{{Size: "S", Color: "Red", Stock: 2}, {Size: "M", Color: "Red", Stock: 3}}
	p, err := svc.Create(ctx, types.ProductRequest{Name: strPtr("Hoodie"), RewardPoints: &points, Variants: &variants})
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.IsActive)

	dup := []types.VariantRequest{{Size: "S", Color: "Red"}, {Size: "S", Color: "Red"}}
	_, err = svc.Create(ctx, types.ProductRequest{Name: strPtr("Dup"), Variants: &dup})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, types.ProductRequest{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	missingStore := int64(55)
	_, err = svc.Create(ctx, types.ProductRequest{Name: strPtr("Orphan"), StoreID: &missingStore})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProductUpdateKeepsUntouchedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewProductService(env.products, env.stores, env.log)
	p := env.seedTShirt(t)

	updated, err := svc.Update(ctx, p.ID, types.ProductRequest{Category: strPtr("giyim")})
	require.NoError(t, err)
	assert.Equal(t, "giyim", updated.Category)
	assert.Equal(t, "T-Shirt", updated.Name)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, p.Version+1, updated.Version)

	variants := []types.VariantRequest{{Size: "M", Color: "Black", Stock: 1}, {Size: "L", Color: "Black", Stock: 4}}
	updated, err = svc.Update(ctx, p.ID, types.ProductRequest{Variants: &variants})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock)
	assert.Len(t, updated.Variants, 2)

	_, err = svc.Update(ctx, 999, types.ProductRequest{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSettingsUpsert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewSettingService(env.tx, env.settings, env.cache, env.log)

	list, err := svc.Upsert(ctx, []types.SettingItem{{Key: "min_payout", Value: "100"}, {Key: "support_email", Value: "a@b.c"}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.Upsert(ctx, []types.SettingItem{{Key: "min_payout", Value: "200"}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "200", list[0].Value)

	require.NoError(t, svc.Delete(ctx, "support_email"))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// fakeSender 记录发送的通知邮件
type fakeSender struct {
	mu   sync.Mutex
	sent []email.NotificationData
}

func (f *fakeSender) Enabled() bool { return true }

func (f *fakeSender) SendNotification(data email.NotificationData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return nil
}

func TestNotificationSendQueuesEmails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.seedUser(t, "ahmet", 0)
	env.seedUser(t, "burak", 0)

	sender := &fakeSender{}
	worker := async.NewWorker(10, env.log)
	worker.Start(1)
	svc := NewNotificationService(env.notifications, env.users, sender, worker, env.log)

	targeted, err := svc.Create(ctx, types.NotificationRequest{Title: strPtr("Kampanya"), Message: strPtr("Yeni ürünler"), TargetUserID: &a.ID})
	require.NoError(t, err)
	broadcast, err := svc.Create(ctx, types.NotificationRequest{Message: strPtr("Herkese")})
	require.NoError(t, err)

	sent, err := svc.Send(ctx, targeted.ID)
	require.NoError(t, err)
	assert.True(t, sent.IsSent)
	assert.NotNil(t, sent.SentAt)

	_, err = svc.Send(ctx, broadcast.ID)
	require.NoError(t, err)

	worker.Stop()
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.sent, 3)

	stored, err := svc.Get(ctx, targeted.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSent)

	ghost := int64(999)
	orphan, err := svc.Create(ctx, types.NotificationRequest{Message: strPtr("?"), TargetUserID: &ghost})
	require.NoError(t, err)
	_, err = svc.Send(ctx, orphan.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestStoryCreateParsesExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewStoryService(repository.NewStoryRepository(env.db), env.log)

	st, err := svc.Create(ctx, types.StoryRequest{Title: strPtr("Yaz"), ExpiresAt: strPtr("2020-01-01T00:00:00Z")})
	require.NoError(t, err)
	require.NotNil(t, st.ExpiresAt)

	_, err = svc.Create(ctx, types.StoryRequest{Title: strPtr("Bozuk"), ExpiresAt: strPtr("yarın")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	visible, err := svc.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	n, err := svc.DeactivateExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLeaderboardBadgesAndSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i, name := range []string{"a", "b", "c", "d"} {
		env.seedUser(t, name, int64(10*(i+1)))
	}
	svc := env.analyticsService()

	entries, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "d", entries[0].Username)
	assert.Equal(t, "gold", entries[0].Badge)
	assert.Equal(t, "silver", entries[1].Badge)
	assert.Equal(t, "bronze", entries[2].Badge)
	assert.Empty(t, entries[3].Badge)
	assert.Equal(t, 4, entries[3].Rank)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.True(t, stats.TotalEarnings.Equal(decimal.NewFromInt(100)))

	day := time.Date(2026, 10, 14, 23, 55, 0, 0, time.UTC)
	snap, err := svc.TakeSnapshot(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.TotalUsers)

	items, err := svc.Range(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].ActiveUsers)
}

func TestAnswerValuesAndAgeGroups(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, answerValues([]byte(`["a","b"]`)))
	assert.Equal(t, []string{"3"}, answerValues([]byte(`3`)))
	assert.Nil(t, answerValues([]byte(`null`)))

	age := 30
	assert.Equal(t, "25-34", ageGroup(&age))
	assert.Equal(t, "unknown", ageGroup(nil))
	assert.Equal(t, "unknown", orUnknown(""))
}

var _ email.Sender = (*fakeSender)(nil)
