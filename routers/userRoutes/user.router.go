package userRoutes

import (
	userControllers "forma/controllers/userControllers"
	"forma/middleware"
	userValidators "forma/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users", middleware.JWTMiddleware, middleware.RequireRoles())
	userGroup.Get("/me", userControllers.GetMe)

	app.Get("/personal-info", middleware.JWTMiddleware, middleware.RequireRoles(), userControllers.GetPersonalInfo)
	app.Put("/personal-info", middleware.JWTMiddleware, middleware.RequireRoles(), userValidators.UpdatePersonalInfo(), userControllers.UpdatePersonalInfo)

	app.Get("/preferences", middleware.JWTMiddleware, middleware.RequireRoles(), userControllers.GetPreferences)
	app.Put("/preferences", middleware.JWTMiddleware, middleware.RequireRoles(), userValidators.UpdatePreferences(), userControllers.UpdatePreferences)

	app.Put("/password", middleware.JWTMiddleware, middleware.RequireRoles(), userValidators.UpdatePassword(), userControllers.UpdatePassword)
}
