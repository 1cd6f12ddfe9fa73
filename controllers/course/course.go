package controllers

import (
	"fmt"
	"log"

	"forma/database"
	"forma/middleware"
	"forma/models"
	courseModels "forma/models/course"
	"forma/utils"
	courseValidator "forma/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// courseResponse shapes a course row with its materials and cover image URL.
func courseResponse(course *courseModels.Course, instructor *models.User) fiber.Map {
	var imageURL string
	materials := make([]fiber.Map, 0, len(course.Materials))
	for _, m := range course.Materials {
		if m.FileCategory == courseModels.CategoryPhoto && imageURL == "" {
			imageURL = m.FilePath
		}
		materials = append(materials, fiber.Map{
			"id":            m.ID,
			"course_id":     m.CourseID,
			"file_name":     m.FileName,
			"file_type":     m.FileType,
			"file_category": m.FileCategory,
			"file_path":     m.FilePath,
			"uploaded_at":   m.CreatedAt,
		})
	}

	resp := fiber.Map{
		"id":             course.ID,
		"title":          course.Title,
		"description":    course.Description,
		"department":     course.Department,
		"external_links": course.ExternalLinks,
		"quiz_link":      course.QuizLink,
		"instructor_id":  course.InstructorID,
		"created_at":     course.CreatedAt,
		"updated_at":     course.UpdatedAt,
		"materials":      materials,
		"image_url":      imageURL,
	}
	if instructor != nil {
		resp["instructor"] = fiber.Map{
			"id":         instructor.ID,
			"first_name": instructor.FirstName,
			"last_name":  instructor.LastName,
			"email":      instructor.Email,
			"department": instructor.Department,
		}
	}
	return resp
}

// CreateCourse publishes a course with its media. The image and document
// are required parts; a recording is optional. Files go to the external
// media host and only their URLs are stored.
func CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	courseImage, err := c.FormFile("course_image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course image is required!", nil)
	}
	coursePDF, err := c.FormFile("course_pdf")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course document is required!", nil)
	}
	courseVideo, _ := c.FormFile("course_video") // optional

	db := database.Database.Db
	tx := db.Begin()

	course := courseModels.Course{
		Title:         reqData.Title,
		Description:   reqData.Description,
		Department:    reqData.Department,
		InstructorID:  user.ID,
		ExternalLinks: reqData.ExternalLinks,
		QuizLink:      reqData.QuizLink,
	}
	if err := tx.Create(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	imageURL, err := utils.Media.Upload(courseImage, fmt.Sprintf("courses/%d/images", course.ID), uuid.NewString())
	if err != nil {
		tx.Rollback()
		log.Printf("Error uploading course image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload course image!", nil)
	}
	materials := []courseModels.CourseMaterial{{
		CourseID:     course.ID,
		FileName:     courseImage.Filename,
		FilePath:     imageURL,
		FileType:     courseImage.Header.Get("Content-Type"),
		FileCategory: courseModels.CategoryPhoto,
	}}

	pdfURL, err := utils.Media.Upload(coursePDF, fmt.Sprintf("courses/%d/pdfs", course.ID), uuid.NewString())
	if err != nil {
		tx.Rollback()
		log.Printf("Error uploading course document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload course document!", nil)
	}
	materials = append(materials, courseModels.CourseMaterial{
		CourseID:     course.ID,
		FileName:     coursePDF.Filename,
		FilePath:     pdfURL,
		FileType:     coursePDF.Header.Get("Content-Type"),
		FileCategory: courseModels.CategoryMaterial,
	})

	if courseVideo != nil {
		videoURL, err := utils.Media.Upload(courseVideo, fmt.Sprintf("courses/%d/videos", course.ID), uuid.NewString())
		if err != nil {
			tx.Rollback()
			log.Printf("Error uploading course recording: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload course recording!", nil)
		}
		materials = append(materials, courseModels.CourseMaterial{
			CourseID:     course.ID,
			FileName:     courseVideo.Filename,
			FilePath:     videoURL,
			FileType:     courseVideo.Header.Get("Content-Type"),
			FileCategory: courseModels.CategoryRecord,
		})
	}

	if err := tx.Create(&materials).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course materials!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	// Fan-out after commit; best-effort
	course.Materials = materials
	utils.NotifyCourseCreated(db, &course, user)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", courseResponse(&course, user))
}

// GetAllCourses lists courses. Employers only see their own department.
func GetAllCourses(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&courseModels.Course{}).Preload("Materials")
	if user.Role == models.RoleEmployer {
		db = db.Where("department = ?", user.Department)
	}

	var courses []courseModels.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", coursesWithInstructors(courses))
}

// GetCoursesByDepartment lists the requester's department courses. A user
// without a department gets a validation failure, not an empty list.
func GetCoursesByDepartment(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.Department == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No department set for this user!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Preload("Materials").
		Where("department = ?", user.Department).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", coursesWithInstructors(courses))
}

// coursesWithInstructors resolves instructor records in one query and
// shapes the listing response.
func coursesWithInstructors(courses []courseModels.Course) []fiber.Map {
	instructorIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		instructorIDs = append(instructorIDs, course.InstructorID)
	}

	instructors := map[uint]*models.User{}
	if len(instructorIDs) > 0 {
		var users []models.User
		if err := database.Database.Db.Where("id IN ?", instructorIDs).Find(&users).Error; err != nil {
			log.Printf("Failed to fetch course instructors: %v", err)
		}
		for i := range users {
			instructors[users[i].ID] = &users[i]
		}
	}

	result := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		result = append(result, courseResponse(&courses[i], instructors[courses[i].InstructorID]))
	}
	return result
}

// GetCourseDetails returns one course with materials and instructor.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Preload("Materials").Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var instructor models.User
	if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", courseResponse(&course, nil))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", courseResponse(&course, &instructor))
}

// GetCourseMaterials lists a course's material rows.
func GetCourseMaterials(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var materials []courseModels.CourseMaterial
	if err := database.Database.Db.Where("course_id = ?", courseID).Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

// UpdateCourse edits course fields. Only the instructor may update.
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own courses!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Department != "" {
		course.Department = reqData.Department
	}
	if reqData.ExternalLinks != "" {
		course.ExternalLinks = reqData.ExternalLinks
	}
	if reqData.QuizLink != "" {
		course.QuizLink = reqData.QuizLink
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and cascades to its materials inside one
// transaction. Only the instructor may delete.
func DeleteCourse(c *fiber.Ctx) error {
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

	if course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own courses!", nil)
	}

	// Explicit application-level cascade: materials go with the course
	tx := db.Begin()
	if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.CourseMaterial{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course materials!", nil)
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	utils.NotifyCourseDeleted(db, &course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// DeleteCourseMaterial removes one material from the instructor's course.
func DeleteCourseMaterial(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	materialID := c.Locals("materialID").(uint)

	db := database.Database.Db

	var material courseModels.CourseMaterial
	if err := db.Where("id = ? AND course_id = ?", materialID, courseID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course material not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete materials from your own courses!", nil)
	}

	if err := db.Delete(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course material deleted successfully!", nil)
}
