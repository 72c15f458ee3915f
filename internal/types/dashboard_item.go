package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DashboardItem is one unit of uploaded or linked content. Kind is
// file|link; SourceURL is set for links, StorageID for uploads.
type DashboardItem struct {
	ID            uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	WorkspaceID   uuid.UUID      `gorm:"type:char(36);index;not null" json:"workspace_id"`
	Workspace     *Workspace     `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkspaceID;references:ID" json:"-"`
	Kind          string         `gorm:"not null;column:kind" json:"kind"`
	DisplayName   string         `gorm:"not null;column:display_name" json:"display_name"`
	SourceURL     string         `gorm:"column:source_url" json:"source_url"`
	StorageID     string         `gorm:"column:storage_id" json:"storage_id"`
	MimeType      string         `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes     int64          `gorm:"column:size_bytes" json:"size_bytes"`
	ExtractedText string         `gorm:"type:longtext;column:extracted_text" json:"extracted_text"`
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (DashboardItem) TableName() string { return "dashboard_item" }
