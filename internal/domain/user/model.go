package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleSalesperson Role = "SALESPERSON"
	RoleCustomer    Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleSalesperson, RoleCustomer:
		return true
	}
	return false
}

// Privileged reports whether the role may administer forms.
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleSalesperson
}

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"userId"`
	Subject      string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"subject"`
	FirstName    string    `gorm:"size:100" json:"firstName"`
	LastName     string    `gorm:"size:100" json:"lastName"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role         Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Subject == "" {
		u.Subject = "local|" + u.ID
	}
	return nil
}

// FullName joins first and last name, trimming missing parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
