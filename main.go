package main

import (
	"log"

	"forma/config"
	messageControllers "forma/controllers/message"
	"forma/database"
	adminRoutes "forma/routers/adminRoutes"
	authRoutes "forma/routers/authRoutes"
	conferenceRoutes "forma/routers/conferenceRoutes"
	courseRoutes "forma/routers/courseRoutes"
	messageRoutes "forma/routers/messageRoutes"
	notificationRoutes "forma/routers/notificationRoutes"
	userRoutes "forma/routers/userRoutes"
	"forma/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	utils.Media = utils.NewCloudMediaStorage()
	messageControllers.Attachments = utils.NewLocalAttachmentStore(config.AppConfig.UploadDir)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	messageRoutes.SetupMessageRoutes(app)
	conferenceRoutes.SetupConferenceRoutes(app)
	userRoutes.SetupUserRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
