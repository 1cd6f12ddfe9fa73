package messageController

import (
	"log"
	"path/filepath"

	"forma/database"
	"forma/middleware"
	"forma/models"
	"forma/utils"
	messageValidator "forma/validators/message"

	"github.com/gofiber/fiber/v2"
)

// Attachments is the store for message files. main() wires the local
// filesystem store; tests point it at a temp directory.
var Attachments utils.AttachmentStore

// SendMessage creates a message, storing the optional attachment under a
// per-message location.
func SendMessage(c *fiber.Ctx) error {
	sender, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedMessage").(*messageValidator.SendMessageRequest)

	db := database.Database.Db

	var receiver models.User
	if err := db.Where("id = ?", reqData.ReceiverID).First(&receiver).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Receiver not found!", nil)
	}

	message := models.Message{
		SenderID:   sender.ID,
		ReceiverID: reqData.ReceiverID,
		Content:    reqData.Content,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	// Attachment is stored after the row exists so the path can include
	// the message id
	if file, err := c.FormFile("file"); err == nil && file != nil {
		path, saveErr := Attachments.Save(file, message.ID)
		if saveErr != nil {
			log.Printf("Error saving message attachment: %v", saveErr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attachment!", nil)
		}
		message.FilePath = path
		message.FileType = file.Header.Get("Content-Type")
		if err := db.Save(&message).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
		}
	}

	message.Sender = sender
	message.Receiver = &receiver

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// GetMessages lists sent or received messages for the user.
func GetMessages(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedMessageList").(*messageValidator.ListMessagesRequest)

	db := database.Database.Db.Preload("Sender").Preload("Receiver")
	if reqData.Type == "received" {
		db = db.Where("receiver_id = ?", user.ID)
	} else {
		db = db.Where("sender_id = ?", user.ID)
	}

	var messages []models.Message
	if err := db.Order("created_at desc").Offset(reqData.Skip).Limit(reqData.Limit).Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", messages)
}

// findScopedMessage loads a message the user is allowed to touch (sender
// or receiver only).
func findScopedMessage(messageID, userID uint) (*models.Message, error) {
	var message models.Message
	err := database.Database.Db.Preload("Sender").Preload("Receiver").
		Where("id = ? AND (sender_id = ? OR receiver_id = ?)", messageID, userID, userID).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ReadMessage returns one message. Fetching as the receiver marks it read
// the first time; fetching as the sender does not.
func ReadMessage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	messageID := c.Locals("messageID").(uint)

	message, err := findScopedMessage(messageID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if message.ReceiverID == user.ID && !message.IsRead {
		message.IsRead = true
		if err := database.Database.Db.Save(message).Error; err != nil {
			log.Printf("Error marking message %d as read: %v", message.ID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message fetched successfully!", message)
}

// MarkMessageRead explicitly sets the read flag; receiver only.
func MarkMessageRead(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	messageID := c.Locals("messageID").(uint)

	db := database.Database.Db

	var message models.Message
	if err := db.Where("id = ? AND receiver_id = ?", messageID, user.ID).First(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if !message.IsRead {
		message.IsRead = true
		if err := db.Save(&message).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark message as read!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message marked as read!", nil)
}

// DeleteMessage removes the stored attachment (and its now-empty
// directory) before removing the row. Sender or receiver only.
func DeleteMessage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	messageID := c.Locals("messageID").(uint)

	message, err := findScopedMessage(messageID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if message.FilePath != "" {
		if err := Attachments.Remove(message.FilePath); err != nil {
			log.Printf("Error removing attachment for message %d: %v", message.ID, err)
		}
	}

	if err := database.Database.Db.Delete(message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message deleted successfully!", nil)
}

// GetMessageFile serves the attachment. Goes through the same scoped
// lookup as ReadMessage, so a receiver fetch marks the message read.
func GetMessageFile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	messageID := c.Locals("messageID").(uint)

	message, err := findScopedMessage(messageID, user.ID)
	if err != nil || message.FilePath == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}

	if message.ReceiverID == user.ID && !message.IsRead {
		message.IsRead = true
		if err := database.Database.Db.Save(message).Error; err != nil {
			log.Printf("Error marking message %d as read: %v", message.ID, err)
		}
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filepath.Base(message.FilePath)+`"`)
	if message.FileType != "" {
		c.Set(fiber.HeaderContentType, message.FileType)
	}
	return c.SendFile(message.FilePath)
}
