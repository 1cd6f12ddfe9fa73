package notificationRoutes

import (
	notificationControllers "forma/controllers/notification"
	"forma/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware, middleware.RequireRoles())

	notificationGroup.Get("/", notificationControllers.GetNotifications)
	notificationGroup.Put("/:id/read", notificationControllers.MarkNotificationRead)
}
