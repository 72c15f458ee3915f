package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuizResult struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:char(36);index;not null" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WorkspaceID     uuid.UUID      `gorm:"type:char(36);index;not null" json:"workspace_id"`
	ItemID          *uuid.UUID     `gorm:"type:char(36);index" json:"item_id"`
	Score           int            `gorm:"not null;column:score" json:"score"`
	TotalQuestions  int            `gorm:"not null;column:total_questions" json:"total_questions"`
	Answers         datatypes.JSON `gorm:"column:answers" json:"answers"`
	TopicBreakdown  datatypes.JSON `gorm:"column:topic_breakdown" json:"topic_breakdown"`
	WeakestTopics   datatypes.JSON `gorm:"column:weakest_topics" json:"weakest_topics"`
	StrongestTopics datatypes.JSON `gorm:"column:strongest_topics" json:"strongest_topics"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
}

func (QuizResult) TableName() string { return "quiz_result" }
