package courseValidator

import (
	"strconv"
	"strings"

	"forma/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Title         string
	Description   string
	Department    string
	ExternalLinks string
	QuizLink      string
}

type UpdateCourseRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Department    string `json:"department"`
	ExternalLinks string `json:"external_links"`
	QuizLink      string `json:"quiz_link"`
}

type ProgressUpdateRequest struct {
	Progress *float64 `json:"progress"`
}

// CourseID validates the :id route parameter.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// MaterialID validates the :material_id route parameter.
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialIDStr := strings.TrimSpace(c.Params("material_id"))
		materialID, err := strconv.Atoi(materialIDStr)
		if err != nil || materialID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Material ID!", nil)
		}

		c.Locals("materialID", uint(materialID))
		return c.Next()
	}
}

// CreateCourse validates the multipart course-creation form. The file parts
// are checked in the controller where the multipart headers are read.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CreateCourseRequest{
			Title:         strings.TrimSpace(c.FormValue("title")),
			Description:   strings.TrimSpace(c.FormValue("description")),
			Department:    strings.TrimSpace(c.FormValue("department")),
			ExternalLinks: strings.TrimSpace(c.FormValue("external_links")),
			QuizLink:      strings.TrimSpace(c.FormValue("quiz_link")),
		}

		errors := make(map[string]string)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}
		if reqData.Department == "" {
			errors["department"] = "Department is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the course-update body; all fields are optional.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// ProgressUpdate validates the progress-update body. The value itself is
// clamped by the controller, not rejected.
func ProgressUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"progress": "Progress value is required!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
