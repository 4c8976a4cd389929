package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/gorm"
)

// Project is a construction project; forms are scoped to one project and one lot.
type Project struct {
	Identifier string    `gorm:"primaryKey;type:varchar(64)" json:"projectIdentifier"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// Lot belongs to a project; AssignedUsers are the salespeople and customers working on it.
type Lot struct {
	Identifier        string      `gorm:"primaryKey;type:varchar(36)" json:"lotIdentifier"`
	ProjectIdentifier string      `gorm:"type:varchar(64);not null;index" json:"projectIdentifier"`
	Civic             string      `gorm:"size:200" json:"civic"`
	AssignedUsers     []user.User `gorm:"many2many:lot_assigned_users;joinForeignKey:LotIdentifier;joinReferences:UserID" json:"assignedUsers,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

func (Lot) TableName() string {
	return "lots"
}

func (l *Lot) BeforeCreate(tx *gorm.DB) error {
	if l.Identifier == "" {
		l.Identifier = uuid.NewString()
	}
	return nil
}

// HasAssignedUser reports whether userID is in the lot's assigned-users set.
func (l Lot) HasAssignedUser(userID string) bool {
	if userID == "" {
		return false
	}
	for _, u := range l.AssignedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}
