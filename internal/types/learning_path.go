package types

import (
	"time"

	"github.com/google/uuid"
)

type LearningPath struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WorkspaceID uuid.UUID  `gorm:"type:char(36);index;not null" json:"workspace_id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"type:text;column:description" json:"description"`
	// Progress is round(100 * completed steps / total steps); recomputed
	// whenever a step's completion flag changes.
	Progress  int            `gorm:"not null;default:0;column:progress" json:"progress"`
	Steps     []LearningStep `gorm:"foreignKey:PathID;references:ID" json:"steps,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (LearningPath) TableName() string { return "learning_path" }
