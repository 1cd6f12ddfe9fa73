package utils

import (
	"fmt"
	"log"

	"forma/config"
	"forma/models"
	courseModels "forma/models/course"

	"gorm.io/gorm"
)

// createNotification inserts one notification row. Failures are logged and
// swallowed: fan-out is best-effort and must never roll back the domain
// operation that triggered it.
func createNotification(db *gorm.DB, userID uint, title, message, notifType string, courseID *uint) {
	notification := models.Notification{
		UserID:          userID,
		Title:           title,
		Message:         message,
		Type:            notifType,
		RelatedCourseID: courseID,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create %s notification for user %d: %v", notifType, userID, err)
	}
}

// findAdmin resolves the admin account by the configured bootstrap email.
// A missing admin is not an error; admin-directed notifications are skipped.
func findAdmin(db *gorm.DB) (*models.User, bool) {
	var admin models.User
	if err := db.Where("email = ?", config.AppConfig.AdminEmail).First(&admin).Error; err != nil {
		log.Printf("Warning: admin account %s not found, skipping admin notification", config.AppConfig.AdminEmail)
		return nil, false
	}
	return &admin, true
}

// NotifyCourseCreated fans out a new-course event to the admin and to every
// professor and employer in the course's department, one row each.
func NotifyCourseCreated(db *gorm.DB, course *courseModels.Course, instructor *models.User) {
	courseID := course.ID

	if admin, ok := findAdmin(db); ok {
		createNotification(db, admin.ID,
			"Nouveau cours ajouté",
			fmt.Sprintf("Le cours '%s' a été ajouté par %s", course.Title, instructor.FullName()),
			models.NotifNewCourse, &courseID)
	}

	var professors []models.User
	if err := db.Where("role = ? AND department = ?", models.RoleProf, course.Department).Find(&professors).Error; err != nil {
		log.Printf("Failed to fetch professors for course notification: %v", err)
	}
	for _, prof := range professors {
		createNotification(db, prof.ID,
			"Nouveau cours dans votre département",
			fmt.Sprintf("Un nouveau cours '%s' a été ajouté dans votre département", course.Title),
			models.NotifDeptNewCourse, &courseID)
	}

	var employers []models.User
	if err := db.Where("role = ? AND department = ?", models.RoleEmployer, course.Department).Find(&employers).Error; err != nil {
		log.Printf("Failed to fetch employers for course notification: %v", err)
	}
	for _, employer := range employers {
		createNotification(db, employer.ID,
			"Nouveau cours disponible",
			fmt.Sprintf("Un nouveau cours '%s' est disponible dans votre département", course.Title),
			models.NotifCourseAvailable, &courseID)
	}
}

// NotifyCourseDeleted informs the admin that a course was removed.
func NotifyCourseDeleted(db *gorm.DB, course *courseModels.Course) {
	admin, ok := findAdmin(db)
	if !ok {
		return
	}
	courseID := course.ID
	createNotification(db, admin.ID,
		"Cours supprimé",
		fmt.Sprintf("Le cours '%s' a été supprimé", course.Title),
		models.NotifCourseDeleted, &courseID)
}

// NotifyEnrollment informs the learner of their own enrollment.
func NotifyEnrollment(db *gorm.DB, userID uint, course *courseModels.Course) {
	courseID := course.ID
	createNotification(db, userID,
		"Inscription à un cours",
		fmt.Sprintf("Vous êtes maintenant inscrit au cours %s", course.Title),
		models.NotifCourseEnrollment, &courseID)
}

// NotifyCourseCompleted informs the learner that a course is finished.
func NotifyCourseCompleted(db *gorm.DB, userID uint, course *courseModels.Course) {
	courseID := course.ID
	createNotification(db, userID,
		"Cours terminé",
		fmt.Sprintf("Félicitations ! Vous avez terminé le cours %s", course.Title),
		models.NotifCourseCompletion, &courseID)
}

// NotifyCourseProgress informs the learner of a progress update.
func NotifyCourseProgress(db *gorm.DB, userID uint, course *courseModels.Course, progress float64) {
	courseID := course.ID
	createNotification(db, userID,
		"Progression mise à jour",
		fmt.Sprintf("Votre progression dans le cours '%s' est maintenant de %.1f%%", course.Title, progress),
		models.NotifProgressUpdated, &courseID)
}

// NotifyConferenceRequest informs the admin of a new conference request.
func NotifyConferenceRequest(db *gorm.DB, requester *models.User, conferenceName string) {
	admin, ok := findAdmin(db)
	if !ok {
		return
	}
	createNotification(db, admin.ID,
		"Nouvelle demande de conférence",
		fmt.Sprintf("%s a demandé à organiser la conférence '%s'", requester.FullName(), conferenceName),
		models.NotifConferenceRequest, nil)
}

// NotifyConferenceStatus informs the requester of an approve/deny decision.
func NotifyConferenceStatus(db *gorm.DB, userID uint, conferenceName string, approved bool) {
	status := "approuvée"
	if !approved {
		status = "refusée"
	}
	createNotification(db, userID,
		"Statut de votre demande de conférence",
		fmt.Sprintf("Votre demande pour la conférence '%s' a été %s", conferenceName, status),
		models.NotifConferenceStatus, nil)
}

// NotifyAccountApproval informs a user of an account approval decision.
func NotifyAccountApproval(db *gorm.DB, userID uint, approved bool) {
	status := "approuvé"
	if !approved {
		status = "refusé"
	}
	createNotification(db, userID,
		"Demande de compte mise à jour",
		fmt.Sprintf("Votre demande de compte a été %s", status),
		models.NotifAccountApproval, nil)
}
