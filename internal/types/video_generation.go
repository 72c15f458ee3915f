package types

import (
	"time"

	"github.com/google/uuid"
)

type VideoGeneration struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:char(36);index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WorkspaceID uuid.UUID `gorm:"type:char(36);index;not null" json:"workspace_id"`
	Topic       string    `gorm:"not null;column:topic" json:"topic"`
	Style       string    `gorm:"column:style" json:"style"`
	Status      string    `gorm:"not null;default:'pending';column:status" json:"status"`
	Script      string    `gorm:"type:longtext;column:script" json:"script"`
	ErrorDetail string    `gorm:"column:error_detail" json:"error_detail,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (VideoGeneration) TableName() string { return "video_generation" }
