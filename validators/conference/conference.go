package conferenceValidator

import (
	"strconv"
	"strings"
	"time"

	"forma/middleware"
	"forma/models"

	"github.com/gofiber/fiber/v2"
)

type CreateConferenceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Type        string `json:"type"`
	Department  string `json:"department"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM

	ParsedDate time.Time `json:"-"`
}

type ApproveConferenceRequest struct {
	Approve *bool `json:"approve"`
}

// ConferenceID validates the :id route parameter.
func ConferenceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Conference ID!", nil)
		}

		c.Locals("conferenceID", uint(id))
		return c.Next()
	}
}

// CreateConference validates the conference-request body, including the
// date (YYYY-MM-DD) and time (HH:MM) formats.
func CreateConference() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateConferenceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Type != models.ConferenceOnline && reqData.Type != models.ConferenceInPerson {
			errors["type"] = "Type must be 'online' or 'in-person'!"
		}
		if strings.TrimSpace(reqData.Department) == "" {
			errors["department"] = "Department is required!"
		}

		parsedDate, err := time.Parse("2006-01-02", reqData.Date)
		if err != nil {
			errors["date"] = "Invalid date format. Please use YYYY-MM-DD!"
		} else {
			reqData.ParsedDate = parsedDate
		}

		if _, err := time.Parse("15:04", reqData.Time); err != nil {
			errors["time"] = "Invalid time format. Please use HH:MM!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedConference", reqData)
		return c.Next()
	}
}

// ApproveConference validates the approve/deny body.
func ApproveConference() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApproveConferenceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Approve == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"approve": "Approval decision is required!",
			})
		}

		c.Locals("validatedApproval", reqData)
		return c.Next()
	}
}
