package conferenceRoutes

import (
	conferenceControllers "forma/controllers/conference"
	"forma/middleware"
	"forma/models"
	conferenceValidators "forma/validators/conference"

	"github.com/gofiber/fiber/v2"
)

func SetupConferenceRoutes(app *fiber.App) {
	conferenceGroup := app.Group("/conferences", middleware.JWTMiddleware)

	// Professors and the admin may request conferences
	conferenceGroup.Post("/", middleware.RequireRoles(models.RoleProf, models.RoleAdmin), conferenceValidators.CreateConference(), conferenceControllers.RequestConference)

	conferenceGroup.Get("/mine", middleware.RequireRoles(models.RoleProf), conferenceControllers.GetMyConferences)
	conferenceGroup.Get("/:id", middleware.RequireRoles(), conferenceValidators.ConferenceID(), conferenceControllers.GetConference)
	conferenceGroup.Delete("/:id", middleware.RequireRoles(), conferenceValidators.ConferenceID(), conferenceControllers.DeleteConference)

	// Only the admin decides pending requests
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin))
	adminGroup.Put("/conferences/:id/approve", conferenceValidators.ConferenceID(), conferenceValidators.ApproveConference(), conferenceControllers.ApproveConference)
	adminGroup.Get("/pending-conferences", conferenceControllers.GetPendingConferences)

	app.Get("/calendar", middleware.JWTMiddleware, middleware.RequireRoles(), conferenceControllers.GetCalendar)
}
