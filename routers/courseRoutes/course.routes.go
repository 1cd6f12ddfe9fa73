package courseRoutes

import (
	controllers "forma/controllers/course"
	"forma/middleware"
	"forma/models"
	validators "forma/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, enrollment and dashboard routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses", middleware.JWTMiddleware)

	// Publishing is limited to professors and the admin
	courseGroup.Post("/", middleware.RequireRoles(models.RoleProf, models.RoleAdmin), validators.CreateCourse(), controllers.CreateCourse)

	courseGroup.Get("/", middleware.RequireRoles(), controllers.GetAllCourses)
	courseGroup.Get("/by-department", middleware.RequireRoles(), controllers.GetCoursesByDepartment)
	courseGroup.Get("/:id", middleware.RequireRoles(), validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:id/materials", middleware.RequireRoles(), validators.CourseID(), controllers.GetCourseMaterials)

	courseGroup.Put("/:id", middleware.RequireRoles(models.RoleProf, models.RoleAdmin), validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireRoles(models.RoleProf, models.RoleAdmin), validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Delete("/:id/materials/:material_id", middleware.RequireRoles(models.RoleProf, models.RoleAdmin), validators.CourseID(), validators.MaterialID(), controllers.DeleteCourseMaterial)

	// Enrollment and progress
	courseGroup.Post("/:id/enroll", middleware.RequireRoles(), validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Put("/:id/complete", middleware.RequireRoles(), validators.CourseID(), controllers.CompleteCourse)
	courseGroup.Get("/:id/progress", middleware.RequireRoles(), validators.CourseID(), controllers.GetCourseProgress)
	courseGroup.Put("/:id/progress", middleware.RequireRoles(), validators.CourseID(), validators.ProgressUpdate(), controllers.UpdateCourseProgress)

	// Per-role dashboards
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware)
	dashboardGroup.Get("/admin", middleware.RequireRoles(models.RoleAdmin), controllers.AdminDashboard)
	dashboardGroup.Get("/prof", middleware.RequireRoles(models.RoleProf), controllers.ProfDashboard)
	dashboardGroup.Get("/employer", middleware.RequireRoles(models.RoleEmployer), controllers.EmployerDashboard)
}
