package userValidator

import (
	"strconv"
	"strings"

	"forma/middleware"
	"forma/models"

	"github.com/gofiber/fiber/v2"
)

type PersonalInfoRequest struct {
	Phone *string `json:"phone"`
}

type PreferencesRequest struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AdminUserUpdateRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
}

type ApprovalRequest struct {
	IsApproved *bool `json:"is_approved"`
}

// UserID validates the :id route parameter.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

// UpdatePersonalInfo validates the personal-info body.
func UpdatePersonalInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PersonalInfoRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPersonalInfo", reqData)
		return c.Next()
	}
}

// UpdatePreferences validates language and theme values.
func UpdatePreferences() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PreferencesRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Language != nil && *reqData.Language != "fr" && *reqData.Language != "en" {
			errors["language"] = "Invalid language. Must be 'fr' or 'en'!"
		}
		if reqData.Theme != nil && *reqData.Theme != "light" && *reqData.Theme != "dark" {
			errors["theme"] = "Invalid theme. Must be 'light' or 'dark'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPreferences", reqData)
		return c.Next()
	}
}

// UpdatePassword validates the password-change body, including the
// confirmation match.
func UpdatePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PasswordUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CurrentPassword == "" {
			errors["current_password"] = "Current password is required!"
		}
		if len(strings.TrimSpace(reqData.NewPassword)) < 8 {
			errors["new_password"] = "New password must be at least 8 characters long!"
		}
		if reqData.NewPassword != reqData.ConfirmPassword {
			errors["confirm_password"] = "New passwords do not match!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassword", reqData)
		return c.Next()
	}
}

// AdminUpdateUser validates the admin user-update body. Role may only be
// changed to prof or employer.
func AdminUpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AdminUserUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Role != nil && *reqData.Role != models.RoleProf && *reqData.Role != models.RoleEmployer {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Invalid role. Must be 'prof' or 'employer'!",
			})
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

// Approval validates the approve-user body.
func Approval() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApprovalRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsApproved == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_approved": "Approval decision is required!",
			})
		}

		c.Locals("validatedApproval", reqData)
		return c.Next()
	}
}
