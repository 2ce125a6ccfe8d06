package models

import (
	"time"

	"gorm.io/datatypes"
)

type ClientContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ProjectSettings struct {
	IsPublic      bool `gorm:"default:false" json:"isPublic"`
	AllowComments bool `gorm:"default:true" json:"allowComments"`
}

type Project struct {
	BaseModel

	Name        string          `gorm:"not null;size:100" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Category    string          `gorm:"not null;default:other" json:"category"`
	Status      string          `gorm:"not null;default:planning" json:"status"`
	Progress    int             `gorm:"not null;default:0" json:"progress"` // derived from tasks, see stats.Progress
	StartDate   time.Time       `gorm:"not null" json:"startDate"`
	Deadline    time.Time       `gorm:"not null" json:"deadline"`
	Budget      float64         `gorm:"not null;default:0" json:"budget"`
	Currency    string          `gorm:"not null;default:USD" json:"currency"`
	Client      ClientContact   `gorm:"embedded;embeddedPrefix:client_" json:"client"`
	OwnerID     uint            `gorm:"not null;index" json:"owner"`
	Tags        datatypes.JSON  `gorm:"type:jsonb" json:"tags,omitempty"`
	Settings    ProjectSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	CompletedAt *time.Time      `json:"completedAt"`

	// Relationships
	Owner User         `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Team  []TeamMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"team"`
	Tasks []Task       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

type TeamMember struct {
	BaseModel

	ProjectID uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"user"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	JoinedAt  time.Time `gorm:"not null" json:"joinedAt"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
