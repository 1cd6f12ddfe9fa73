package course

import "gorm.io/gorm"

// Course represents a published training course
type Course struct {
	gorm.Model
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description"`
	Department    string `json:"department" gorm:"index;not null"`
	InstructorID  uint   `json:"instructor_id" gorm:"index;not null"`
	ExternalLinks string `json:"external_links"`
	QuizLink      string `json:"quiz_link"`

	Materials []CourseMaterial `json:"materials,omitempty" gorm:"foreignKey:CourseID"`
}
