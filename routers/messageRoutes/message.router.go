package messageRoutes

import (
	messageControllers "forma/controllers/message"
	"forma/middleware"
	messageValidators "forma/validators/message"

	"github.com/gofiber/fiber/v2"
)

func SetupMessageRoutes(app *fiber.App) {
	messageGroup := app.Group("/messages", middleware.JWTMiddleware, middleware.RequireRoles())

	messageGroup.Post("/", messageValidators.SendMessage(), messageControllers.SendMessage)
	messageGroup.Get("/", messageValidators.ListMessages(), messageControllers.GetMessages)
	messageGroup.Get("/:id", messageValidators.MessageID(), messageControllers.ReadMessage)
	messageGroup.Put("/:id/read", messageValidators.MessageID(), messageControllers.MarkMessageRead)
	messageGroup.Delete("/:id", messageValidators.MessageID(), messageControllers.DeleteMessage)
	messageGroup.Get("/:id/file", messageValidators.MessageID(), messageControllers.GetMessageFile)
}
