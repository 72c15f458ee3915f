package types

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:char(36);index;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkspaceID;references:ID" json:"-"`
	ParentID    *uuid.UUID `gorm:"type:char(36);index" json:"parent_id"`
	Name        string     `gorm:"not null;column:name" json:"name"`
	Color       string     `gorm:"column:color" json:"color"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Folder) TableName() string { return "folder" }
