package controllers

import (
	"fmt"
	"time"

	"forma/database"
	"forma/middleware"
	courseModels "forma/models/course"
	"forma/utils"
	courseValidator "forma/validators/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse creates the progress record for (user, course). Duplicate
// enrollment is a conflict. The enrollment commits before the notification
// is attempted; a failed notification never rolls it back.
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	now := time.Now().UTC()
	progress := courseModels.CourseProgress{
		UserID:       user.ID,
		CourseID:     courseID,
		Progress:     0,
		Status:       courseModels.StatusInProgress,
		StartDate:    now,
		LastAccessed: now,
	}

	tx := db.Begin()
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		// The unique (user_id, course_id) index turns a concurrent double
		// enroll into a constraint violation.
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.NotifyEnrollment(db, user.ID, &course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
		"course": fiber.Map{
			"id":         course.ID,
			"title":      course.Title,
			"department": course.Department,
		},
		"start_date": progress.StartDate,
		"status":     progress.Status,
		"progress":   fmt.Sprintf("%.1f%%", progress.Progress),
	})
}

// CompleteCourse explicitly marks the enrollment finished.
func CompleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	now := time.Now().UTC()
	progress.IsCompleted = true
	progress.Status = courseModels.StatusCompleted
	progress.Progress = 100
	progress.CompletionDate = &now
	progress.LastAccessed = now

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	utils.NotifyCourseCompleted(db, user.ID, &course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course marked as completed!", fiber.Map{
		"course": fiber.Map{
			"id":    course.ID,
			"title": course.Title,
		},
		"completion_date": progress.CompletionDate,
		"progress":        "100.0%",
		"status":          progress.Status,
	})
}

// GetCourseProgress returns the progress record and touches LastAccessed.
func GetCourseProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	progress.LastAccessed = time.Now().UTC()
	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update last access!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":    course.ID,
		"course_title": course.Title,
		"progress_details": fiber.Map{
			"enrollment_date": progress.StartDate,
			"last_accessed":   progress.LastAccessed,
			"completion_date": progress.CompletionDate,
			"progress_value":  progress.Progress,
			"status":          progress.Status,
			"is_completed":    progress.IsCompleted,
		},
	})
}

// UpdateCourseProgress clamps the submitted value to [0,100] before
// persisting. Reaching 100 completes the enrollment exactly once; a later
// lower value never clears the completion flag.
func UpdateCourseProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedProgress").(*courseValidator.ProgressUpdateRequest)

	db := database.Database.Db

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	value := *reqData.Progress
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	progress.Progress = value
	progress.LastAccessed = time.Now().UTC()

	if value >= 100 && !progress.IsCompleted {
		now := time.Now().UTC()
		progress.IsCompleted = true
		progress.Status = courseModels.StatusCompleted
		progress.CompletionDate = &now
	}

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err == nil {
		utils.NotifyCourseProgress(db, user.ID, &course, progress.Progress)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"current_progress": fmt.Sprintf("%.1f%%", progress.Progress),
		"status":           progress.Status,
		"is_completed":     progress.IsCompleted,
		"last_updated":     progress.LastAccessed,
	})
}
