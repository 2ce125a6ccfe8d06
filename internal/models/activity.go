package models

import (
	"gorm.io/datatypes"
)

// Activity is an append-only audit record. Rows are written as a side
// effect of project/task/comment mutations and never updated.
type Activity struct {
	BaseModel

	Type        string         `gorm:"not null" json:"type"`
	Action      string         `gorm:"not null" json:"action"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	UserID      uint           `gorm:"not null;index:idx_user_created" json:"user"`
	ProjectID   *uint          `gorm:"index" json:"project,omitempty"`
	TaskID      *uint          `json:"task,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
