package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Story 首页故事
type Story struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	MediaURL    string     `db:"media_url" json:"mediaUrl"`
	MediaFile   string     `db:"media_file" json:"mediaFile"`
	MediaType   string     `db:"media_type" json:"mediaType"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	ViewCount   int        `db:"view_count" json:"viewCount"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expiresAt"`
}

// 地图任务状态
const (
	MapTaskStatusActive    = "active"
	MapTaskStatusInactive  = "inactive"
	MapTaskStatusCompleted = "completed"
	MapTaskStatusCancelled = "cancelled"
)

// MapTask 基于位置的任务
type MapTask struct {
	ID             int64           `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	Description    string          `db:"description" json:"description"`
	Latitude       float64         `db:"latitude" json:"latitude"`
	Longitude      float64         `db:"longitude" json:"longitude"`
	Radius         int             `db:"radius" json:"radius"`
	Reward         decimal.Decimal `db:"reward" json:"reward"`
	Status         string          `db:"status" json:"status"`
	CompletedCount int             `db:"completed_count" json:"completedCount"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

// Notification 推送通知
type Notification struct {
	ID            int64      `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Message       string     `db:"message" json:"message"`
	Type          string     `db:"type" json:"type"`
	TargetUserID  *int64     `db:"target_user_id" json:"targetUserId"`
	TargetUserIDs Int64List  `db:"target_user_ids" json:"targetUserIds"`
	IsRead        bool       `db:"is_read" json:"isRead"`
	IsSent        bool       `db:"is_sent" json:"isSent"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	SentAt        *time.Time `db:"sent_at" json:"sentAt"`
	ReadAt        *time.Time `db:"read_at" json:"readAt"`
}

// Recipients 通知的目标用户，未指定时为全部用户
func (n *Notification) Recipients() []int64 {
	ids := make([]int64, 0, len(n.TargetUserIDs)+1)
	seen := make(map[int64]struct{}, cap(ids))
	if n.TargetUserID != nil {
		ids = append(ids, *n.TargetUserID)
		seen[*n.TargetUserID] = struct{}{}
	}
	for _, id := range n.TargetUserIDs {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
			seen[id] = struct{}{}
		}
	}
	return ids
}

// Setting 系统设置键值
type Setting struct {
	ID          int64     `db:"id" json:"id"`
	Key         string    `db:"setting_key" json:"key"`
	Value       string    `db:"setting_value" json:"value"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Analytics 每日运营快照
type Analytics struct {
	ID               int64           `db:"id" json:"id"`
	Date             time.Time       `db:"snapshot_date" json:"date"`
	TotalUsers       int             `db:"total_users" json:"totalUsers"`
	ActiveUsers      int             `db:"active_users" json:"activeUsers"`
	CompletedSurveys int             `db:"completed_surveys" json:"completedSurveys"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"totalEarnings"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// DashboardStats 仪表盘汇总
type DashboardStats struct {
	TotalUsers       int             `db:"total_users" json:"totalUsers"`
	ActiveUsers      int             `db:"active_users" json:"activeUsers"`
	TotalSurveys     int             `db:"total_surveys" json:"totalSurveys"`
	ActiveSurveys    int             `db:"active_surveys" json:"activeSurveys"`
	CompletedSurveys int             `db:"completed_surveys" json:"completedSurveys"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"totalEarnings"`
	TotalRedemptions int             `db:"total_redemptions" json:"totalRedemptions"`
}
