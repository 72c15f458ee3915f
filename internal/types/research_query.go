package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ResearchQuery struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:char(36);index;not null" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WorkspaceID uuid.UUID      `gorm:"type:char(36);index;not null" json:"workspace_id"`
	Query       string         `gorm:"type:text;not null;column:query" json:"query"`
	Findings    datatypes.JSON `gorm:"column:findings" json:"findings"`
	Synthesis   string         `gorm:"type:longtext;column:synthesis" json:"synthesis"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (ResearchQuery) TableName() string { return "research_query" }
