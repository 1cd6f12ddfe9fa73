package models

import "gorm.io/gorm"

// Notification types. Each is produced by exactly one domain event.
const (
	NotifAccountApproval   = "account_approval"
	NotifNewCourse         = "new_course"
	NotifDeptNewCourse     = "department_new_course"
	NotifCourseAvailable   = "new_course_available"
	NotifCourseDeleted     = "course_deleted"
	NotifCourseEnrollment  = "course_enrollment"
	NotifCourseCompletion  = "course_completion"
	NotifProgressUpdated   = "progress_updated"
	NotifConferenceRequest = "conference_request"
	NotifConferenceStatus  = "conference_status"
)

// Notification is created only as a side effect of a domain event.
type Notification struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	Type            string `json:"type"`
	RelatedCourseID *uint  `json:"related_course_id"`
	IsRead          bool   `json:"is_read" gorm:"default:false"`
}
