package adminRoutes

import (
	adminControllers "forma/controllers/admin"
	"forma/middleware"
	"forma/models"
	userValidators "forma/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin))

	adminGroup.Get("/pending-users", adminControllers.GetPendingUsers)
	adminGroup.Post("/approve-user/:id", userValidators.UserID(), userValidators.Approval(), adminControllers.ApproveUser)
	adminGroup.Put("/users/:id", userValidators.UserID(), userValidators.AdminUpdateUser(), adminControllers.UpdateUser)
	adminGroup.Delete("/users/:id", userValidators.UserID(), adminControllers.DeleteUser)

	// Public user directory used for message addressing
	app.Get("/public/users", adminControllers.GetAllUsers)
}
