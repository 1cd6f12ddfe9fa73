package controllers

import (
	"forma/database"
	"forma/middleware"
	"forma/models"
	courseModels "forma/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard lists the courses the admin authored.
func AdminDashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Preload("Materials").
		Where("instructor_id = ?", user.ID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", coursesWithInstructors(courses))
}

// ProfDashboard lists the professor's own courses.
func ProfDashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Preload("Materials").
		Where("instructor_id = ?", user.ID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", coursesWithInstructors(courses))
}

// EmployerDashboard lists all available courses with material counts.
func EmployerDashboard(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Preload("Materials").
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	instructorIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		instructorIDs = append(instructorIDs, course.InstructorID)
	}
	instructors := map[uint]string{}
	if len(instructorIDs) > 0 {
		var users []models.User
		if err := database.Database.Db.Where("id IN ?", instructorIDs).Find(&users).Error; err == nil {
			for _, u := range users {
				instructors[u.ID] = u.FullName()
			}
		}
	}

	available := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		available = append(available, fiber.Map{
			"id":              course.ID,
			"title":           course.Title,
			"description":     course.Description,
			"instructor":      instructors[course.InstructorID],
			"materials_count": len(course.Materials),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"available_courses": available,
	})
}
