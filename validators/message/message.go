package messageValidator

import (
	"strconv"
	"strings"

	"forma/middleware"

	"github.com/gofiber/fiber/v2"
)

type SendMessageRequest struct {
	Content    string
	ReceiverID uint
}

type ListMessagesRequest struct {
	Type  string
	Skip  int
	Limit int
}

// MessageID validates the :id route parameter.
func MessageID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Message ID!", nil)
		}

		c.Locals("messageID", uint(id))
		return c.Next()
	}
}

// SendMessage validates the multipart message form. The attachment part is
// optional and handled by the controller.
func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		content := strings.TrimSpace(c.FormValue("content"))
		receiverStr := strings.TrimSpace(c.FormValue("receiver_id"))

		errors := make(map[string]string)

		if content == "" {
			errors["content"] = "Content is required!"
		}

		receiverID, err := strconv.Atoi(receiverStr)
		if err != nil || receiverID <= 0 {
			errors["receiver_id"] = "Valid receiver ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMessage", &SendMessageRequest{
			Content:    content,
			ReceiverID: uint(receiverID),
		})
		return c.Next()
	}
}

// ListMessages validates the message-listing query parameters.
func ListMessages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		msgType := c.Query("type", "received")
		if msgType != "received" && msgType != "sent" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message type!", nil)
		}

		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)
		if skip < 0 || limit < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"pagination": "Skip must be >= 0 and limit must be > 0!",
			})
		}

		c.Locals("validatedMessageList", &ListMessagesRequest{
			Type:  msgType,
			Skip:  skip,
			Limit: limit,
		})
		return c.Next()
	}
}
