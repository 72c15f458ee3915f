package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudySession is an interactive question-answering session. Questions is
// the LLM-generated set; AnswerLog accumulates submitted answers.
type StudySession struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:char(36);index;not null" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WorkspaceID     uuid.UUID      `gorm:"type:char(36);index;not null" json:"workspace_id"`
	ItemID          *uuid.UUID     `gorm:"type:char(36);index" json:"item_id"`
	Topic           string         `gorm:"not null;column:topic" json:"topic"`
	Status          string         `gorm:"not null;default:'active';column:status" json:"status"`
	Difficulty      int            `gorm:"not null;default:1;column:difficulty" json:"difficulty"`
	Questions       datatypes.JSON `gorm:"column:questions" json:"questions"`
	AnswerLog       datatypes.JSON `gorm:"column:answer_log" json:"answer_log"`
	CorrectCount    int            `gorm:"not null;default:0;column:correct_count" json:"correct_count"`
	IncorrectCount  int            `gorm:"not null;default:0;column:incorrect_count" json:"incorrect_count"`
	CurrentStreak   int            `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
	CurrentMissRun  int            `gorm:"not null;default:0;column:current_miss_run" json:"current_miss_run"`
	QuestionsTotal  int            `gorm:"not null;default:0;column:questions_total" json:"questions_total"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (StudySession) TableName() string { return "study_session" }
