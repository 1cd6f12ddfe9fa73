package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress statuses
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// CourseProgress joins one user to one course. Progress is always stored
// clamped to [0,100]; completion is monotonic once set.
type CourseProgress struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID       uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Progress       float64    `json:"progress" gorm:"default:0"`
	Status         string     `json:"status" gorm:"default:'IN_PROGRESS'"`
	IsCompleted    bool       `json:"is_completed" gorm:"default:false"`
	StartDate      time.Time  `json:"start_date"`
	CompletionDate *time.Time `json:"completion_date"`
	LastAccessed   time.Time  `json:"last_accessed"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
