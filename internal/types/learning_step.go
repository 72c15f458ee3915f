package types

import (
	"time"

	"github.com/google/uuid"
)

type LearningStep struct {
	ID          uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	PathID      uuid.UUID     `gorm:"type:char(36);index;not null" json:"path_id"`
	Path        *LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"-"`
	Position    int           `gorm:"not null;column:position" json:"position"`
	Title       string        `gorm:"not null;column:title" json:"title"`
	Description string        `gorm:"type:text;column:description" json:"description"`
	Completed   bool          `gorm:"not null;default:false;column:completed" json:"completed"`
	CompletedAt *time.Time    `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (LearningStep) TableName() string { return "learning_step" }
