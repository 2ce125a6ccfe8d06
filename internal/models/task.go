package models

import (
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	BaseModel

	Title          string         `gorm:"not null;size:200" json:"title"`
	Description    string         `gorm:"size:1000" json:"description"`
	ProjectID      uint           `gorm:"not null;index:idx_project_status" json:"project"`
	Status         string         `gorm:"not null;default:todo;index:idx_project_status" json:"status"`
	Priority       string         `gorm:"not null;default:medium" json:"priority"`
	AssigneeID     *uint          `gorm:"index" json:"assignee"`
	ReporterID     uint           `gorm:"not null" json:"reporter"`
	DueDate        time.Time      `gorm:"not null;index" json:"dueDate"`
	EstimatedHours float64        `gorm:"not null;default:0" json:"estimatedHours"`
	ActualHours    float64        `gorm:"not null;default:0" json:"actualHours"`
	Labels         datatypes.JSON `gorm:"type:jsonb" json:"labels,omitempty"`
	Dependencies   datatypes.JSON `gorm:"type:jsonb" json:"dependencies,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt"`

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Assignee    *User        `gorm:"foreignKey:AssigneeID" json:"-"`
	Reporter    User         `gorm:"foreignKey:ReporterID" json:"-"`
	Attachments []Attachment `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"attachments"`
	Comments    []Comment    `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"comments"`
	Subtasks    []Subtask    `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"subtasks"`
}

type Attachment struct {
	BaseModel

	TaskID     uint      `gorm:"not null;index" json:"-"`
	Filename   string    `gorm:"not null" json:"filename"`
	URL        string    `gorm:"not null" json:"url"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`
	Size       int64     `gorm:"not null;default:0" json:"size"`
}

type Comment struct {
	BaseModel

	TaskID  uint   `gorm:"not null;index" json:"-"`
	UserID  uint   `gorm:"not null" json:"user"`
	Content string `gorm:"not null" json:"content"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

type Subtask struct {
	BaseModel

	TaskID      uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}
