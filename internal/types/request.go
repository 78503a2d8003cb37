package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PageQuery 列表分页参数
type PageQuery struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit" binding:"min=0"`
}

// PurchaseRequest 兑换请求，必填项在服务层按顺序校验
type PurchaseRequest struct {
	UserID   *int64 `json:"userId"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity *int   `json:"quantity"`
}

// RegisterRequest App用户注册请求
type RegisterRequest struct {
	Email          string   `json:"email" binding:"required,email"`
	Username       string   `json:"username" binding:"required,min=3,max=50"`
	Password       string   `json:"password" binding:"required,min=6"`
	Name           string   `json:"name" binding:"required"`
	Age            *int     `json:"age" binding:"omitempty,min=0,max=150"`
	BirthDate      string   `json:"birth_date"`
	Gender         string   `json:"gender"`
	City           string   `json:"city"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	ConsentVersion string   `json:"consentVersion"`
}

// LoginRequest 登录请求，邮箱和用户名二选一
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier 登录标识
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// UpdateUserRequest 更新用户，只修改提供的字段
type UpdateUserRequest struct {
	Email     *string  `json:"email" binding:"omitempty,email"`
	Username  *string  `json:"username" binding:"omitempty,min=3,max=50"`
	Name      *string  `json:"name"`
	Age       *int     `json:"age" binding:"omitempty,min=0,max=150"`
	Gender    *string  `json:"gender"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsActive  *bool    `json:"isActive"`
	Status    *string  `json:"status" binding:"omitempty,oneof=active suspended deleted"`
}

// SurveyRequest 创建问卷
type SurveyRequest struct {
	Title              string          `json:"title" binding:"required"`
	Description        string          `json:"description"`
	Type               string          `json:"type" binding:"required"`
	Category           string          `json:"category"`
	Status             string          `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	TargetParticipants *int            `json:"targetParticipants" binding:"omitempty,min=0"`
	Reward             decimal.Decimal `json:"reward"`
	Duration           int             `json:"duration" binding:"min=0"`
	URL                string          `json:"url"`
	Questions          json.RawMessage `json:"questions"`
	Latitude           *float64        `json:"latitude"`
	Longitude          *float64        `json:"longitude"`
	Radius             *int            `json:"radius" binding:"omitempty,min=0"`
}

// UpdateSurveyRequest 更新问卷
type UpdateSurveyRequest struct {
	Title              *string          `json:"title" binding:"omitempty,min=1"`
	Description        *string          `json:"description"`
	Type               *string          `json:"type" binding:"omitempty,min=1"`
	Category           *string          `json:"category"`
	Status             *string          `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	TargetParticipants *int             `json:"targetParticipants" binding:"omitempty,min=0"`
	Reward             *decimal.Decimal `json:"reward"`
	Duration           *int             `json:"duration" binding:"omitempty,min=0"`
	URL                *string          `json:"url"`
	Questions          json.RawMessage  `json:"questions"`
	Latitude           *float64         `json:"latitude"`
	Longitude          *float64         `json:"longitude"`
	Radius             *int             `json:"radius" binding:"omitempty,min=0"`
}

// CompleteSurveyRequest 提交问卷作答
type CompleteSurveyRequest struct {
	UserID    int64           `json:"userId"`
	Responses json.RawMessage `json:"responses"`
	Answers   json.RawMessage `json:"answers"`
	Score     *int            `json:"score"`
}

// StoryRequest 创建或更新故事
type StoryRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	MediaURL    *string `json:"mediaUrl"`
	MediaFile   *string `json:"mediaFile"`
	MediaType   *string `json:"mediaType" binding:"omitempty,oneof=image video"`
	IsActive    *bool   `json:"isActive"`
	ExpiresAt   *string `json:"expiresAt"`
}

// MapTaskRequest 创建地图任务
type MapTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Latitude    *float64        `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64        `json:"longitude" binding:"required,min=-180,max=180"`
	Radius      int             `json:"radius" binding:"min=0"`
	Reward      decimal.Decimal `json:"reward"`
	Status      string          `json:"status" binding:"omitempty,oneof=active inactive completed cancelled"`
}

// UpdateMapTaskRequest 更新地图任务
type UpdateMapTaskRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1"`
	Description *string          `json:"description"`
	Latitude    *float64         `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64         `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Radius      *int             `json:"radius" binding:"omitempty,min=0"`
	Reward      *decimal.Decimal `json:"reward"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active inactive completed cancelled"`
}

// NotificationRequest 创建或更新通知
type NotificationRequest struct {
	Title         *string `json:"title"`
	Message       *string `json:"message" binding:"omitempty,min=1"`
	Type          *string `json:"type" binding:"omitempty,oneof=info success warning error promotion system"`
	TargetUserID  *int64  `json:"targetUserId"`
	TargetUserIDs []int64 `json:"targetUserIds"`
	IsRead        *bool   `json:"isRead"`
}

// StoreRequest 创建或更新商店
type StoreRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// VariantRequest 商品规格
type VariantRequest struct {
	Size  string `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// ProductRequest 创建或更新商品
type ProductRequest struct {
	StoreID      *int64            `json:"storeId"`
	Name         *string           `json:"name" binding:"omitempty,min=1"`
	Description  *string           `json:"description"`
	Price        *decimal.Decimal  `json:"price"`
	RewardPoints *decimal.Decimal  `json:"rewardPoints"`
	Stock        *int              `json:"stock" binding:"omitempty,min=0"`
	Images       []string          `json:"images"`
	Category     *string           `json:"category"`
	IsActive     *bool             `json:"isActive"`
	Variants     *[]VariantRequest `json:"variants" binding:"omitempty,dive"`
}

// SettingItem 单个设置项
type SettingItem struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// UpdateSettingsRequest 批量写入设置
type UpdateSettingsRequest struct {
	Settings []SettingItem `json:"settings" binding:"required,dive"`
}

// AdminUserRequest 创建或更新管理员
type AdminUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Name     *string `json:"name"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
	IsActive *bool   `json:"isActive"`
}
