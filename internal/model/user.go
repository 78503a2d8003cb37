package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 用户状态
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusDeleted   = "deleted"
)

// User App用户，TotalEarnings 为可兑换的积分余额
type User struct {
	ID               int64           `db:"id" json:"id"`
	Email            string          `db:"email" json:"email"`
	Username         string          `db:"username" json:"username"`
	Password         string          `db:"password" json:"-"`
	Name             string          `db:"name" json:"name"`
	Age              *int            `db:"age" json:"age"`
	Gender           string          `db:"gender" json:"gender"`
	City             string          `db:"city" json:"city"`
	Latitude         *float64        `db:"latitude" json:"latitude"`
	Longitude        *float64        `db:"longitude" json:"longitude"`
	IPAddress        string          `db:"ip_address" json:"ipAddress"`
	ConsentVersion   string          `db:"consent_version" json:"consentVersion"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"totalEarnings"`
	CompletedSurveys int             `db:"completed_surveys" json:"completedSurveys"`
	IsActive         bool            `db:"is_active" json:"isActive"`
	Status           string          `db:"status" json:"status"`
	LastLoginAt      *time.Time      `db:"last_login_at" json:"lastLoginAt"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`
}

// UserHistory 用户的问卷参与记录
type UserHistory struct {
	CompletedSurveys  []SurveyHistoryItem `json:"completedSurveys"`
	IncompleteSurveys []SurveyHistoryItem `json:"incompleteSurveys"`
	TotalEarnings     decimal.Decimal     `json:"totalEarnings"`
	CompletedCount    int                 `json:"completedCount"`
}

// SurveyHistoryItem 单条参与记录
type SurveyHistoryItem struct {
	SurveyID    int64           `db:"survey_id" json:"surveyId"`
	Title       string          `db:"title" json:"title"`
	Category    string          `db:"category" json:"category"`
	Reward      decimal.Decimal `db:"reward" json:"reward"`
	IsCompleted bool            `db:"is_completed" json:"isCompleted"`
	StartedAt   time.Time       `db:"started_at" json:"startedAt"`
	CompletedAt *time.Time      `db:"completed_at" json:"completedAt"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank             int             `db:"-" json:"rank"`
	ID               int64           `db:"id" json:"id"`
	Username         string          `db:"username" json:"username"`
	Name             string          `db:"name" json:"name"`
	City             string          `db:"city" json:"city"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"totalEarnings"`
	CompletedSurveys int             `db:"completed_surveys" json:"completedSurveys"`
	Badge            string          `db:"-" json:"badge,omitempty"`
}
