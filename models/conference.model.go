package models

import (
	"time"

	"gorm.io/gorm"
)

// Conference request statuses. The only transitions are
// PENDING -> APPROVED and PENDING -> DENIED, performed by an admin.
const (
	ConferencePending  = "PENDING"
	ConferenceApproved = "APPROVED"
	ConferenceDenied   = "DENIED"
)

// Conference types
const (
	ConferenceOnline   = "online"
	ConferenceInPerson = "in-person"
)

type ConferenceRequest struct {
	gorm.Model
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Link          string    `json:"link"`
	Type          string    `json:"type" gorm:"not null"` // online or in-person
	Department    string    `json:"department" gorm:"not null"`
	Date          time.Time `json:"date" gorm:"not null"`
	Time          string    `json:"time" gorm:"not null"` // HH:MM
	RequestedByID uint      `json:"requested_by_id" gorm:"index"`
	Status        string    `json:"status" gorm:"default:'PENDING'"`

	RequestedBy *User `json:"requested_by,omitempty" gorm:"foreignKey:RequestedByID"`
}
