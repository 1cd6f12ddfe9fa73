package authValidator

import (
	"forma/middleware"
	"forma/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2"`
	LastName        string `json:"last_name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Department      string `json:"department" validate:"required"`
	Role            string `json:"role" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "FirstName":
					errors["first_name"] = "First name must be at least 2 characters long!"
				case "LastName":
					errors["last_name"] = "Last name must be at least 2 characters long!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "Department":
					errors["department"] = "Department is required!"
				case "Role":
					errors["role"] = "Role is required!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				case "ConfirmPassword":
					errors["confirm_password"] = "Password confirmation is required!"
				}
			}
		}

		// Self-service registration may only request prof or employer
		if reqData.Role != "" && reqData.Role != models.RoleProf && reqData.Role != models.RoleEmployer {
			errors["role"] = "Role must be 'prof' or 'employer'!"
		}

		if reqData.ConfirmPassword != "" && reqData.Password != reqData.ConfirmPassword {
			errors["confirm_password"] = "Passwords do not match!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Email":
					errors["email"] = "Invalid email!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
