package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// 问卷状态
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusActive    = "active"
	SurveyStatusPaused    = "paused"
	SurveyStatusCompleted = "completed"
)

// Survey 问卷
type Survey struct {
	ID                  int64           `db:"id" json:"id"`
	Title               string          `db:"title" json:"title"`
	Description         string          `db:"description" json:"description"`
	Type                string          `db:"type" json:"type"`
	Category            string          `db:"category" json:"category"`
	Status              string          `db:"status" json:"status"`
	TargetParticipants  int             `db:"target_participants" json:"targetParticipants"`
	CurrentParticipants int             `db:"current_participants" json:"currentParticipants"`
	CompletedCount      int             `db:"completed_count" json:"completedCount"`
	Reward              decimal.Decimal `db:"reward" json:"reward"`
	Duration            int             `db:"duration" json:"duration"`
	URL                 string          `db:"url" json:"url"`
	Questions           types.JSONText  `db:"questions" json:"questions"`
	Latitude            *float64        `db:"latitude" json:"latitude"`
	Longitude           *float64        `db:"longitude" json:"longitude"`
	Radius              *int            `db:"radius" json:"radius"`
	CreatedAt           time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updatedAt"`
	CompletedAt         *time.Time      `db:"completed_at" json:"completedAt"`
}

// SurveyResponse 用户的问卷作答
type SurveyResponse struct {
	ID          int64          `db:"id" json:"id"`
	SurveyID    int64          `db:"survey_id" json:"surveyId"`
	UserID      int64          `db:"user_id" json:"userId"`
	Responses   types.JSONText `db:"responses" json:"responses"`
	IsCompleted bool           `db:"is_completed" json:"isCompleted"`
	Score       *int           `db:"score" json:"score"`
	StartedAt   time.Time      `db:"started_at" json:"startedAt"`
	CompletedAt *time.Time     `db:"completed_at" json:"completedAt"`
}

// SurveyAnalytics 问卷单题统计
type SurveyAnalytics struct {
	ID             int64          `db:"id" json:"id"`
	SurveyID       int64          `db:"survey_id" json:"surveyId"`
	QuestionID     string         `db:"question_id" json:"questionId"`
	QuestionText   string         `db:"question_text" json:"questionText"`
	QuestionType   string         `db:"question_type" json:"questionType"`
	ResponseData   types.JSONText `db:"response_data" json:"responseData"`
	Demographics   types.JSONText `db:"demographics" json:"demographics"`
	TotalResponses int            `db:"total_responses" json:"totalResponses"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}
