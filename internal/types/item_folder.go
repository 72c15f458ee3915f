package types

import (
	"time"

	"github.com/google/uuid"
)

// ItemFolder joins dashboard items to folders. Rows are removed before
// either side is deleted.
type ItemFolder struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	ItemID    uuid.UUID      `gorm:"type:char(36);uniqueIndex:idx_item_folder;not null" json:"item_id"`
	Item      *DashboardItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItemID;references:ID" json:"-"`
	FolderID  uuid.UUID      `gorm:"type:char(36);uniqueIndex:idx_item_folder;index;not null" json:"folder_id"`
	Folder    *Folder        `gorm:"constraint:OnDelete:CASCADE;foreignKey:FolderID;references:ID" json:"-"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (ItemFolder) TableName() string { return "item_folder" }
