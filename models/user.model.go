package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles form a closed set. Access control compares against these constants
// only; anything else is rejected at validation time.
const (
	RoleAdmin    = "admin"
	RoleProf     = "prof"
	RoleEmployer = "employer"
)

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProf, RoleEmployer:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	FirstName   string         `json:"first_name" gorm:"default:''"`
	LastName    string         `json:"last_name" gorm:"default:''"`
	Email       string         `json:"email" gorm:"unique;not null"`
	Phone       string         `json:"phone" gorm:"default:''"`
	Department  string         `json:"department" gorm:"default:''"`
	Role        string         `json:"role" gorm:"default:'employer'"`
	Password    string         `json:"-" gorm:"not null"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	IsApproved  bool           `json:"is_approved" gorm:"default:false"`
	Preferences datatypes.JSON `json:"preferences"`
	LastLogin   *time.Time     `json:"last_login"`
}

// FullName is used in notification messages and responses.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
