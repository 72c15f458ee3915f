package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	ChatID    uuid.UUID      `gorm:"type:char(36);index;not null" json:"chat_id"`
	UserID    uuid.UUID      `gorm:"type:char(36);index;not null" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Role      string         `gorm:"not null;column:role" json:"role"`
	Content   string         `gorm:"type:longtext;not null;column:content" json:"content"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }
