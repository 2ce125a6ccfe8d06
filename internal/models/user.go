package models

type User struct {
	BaseModel

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Phone     string `json:"phone"`

	// Relationships
	OwnedProjects   []Project    `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	TeamMemberships []TeamMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
