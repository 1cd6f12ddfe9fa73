package userController

import (
	"encoding/json"
	"log"
	"time"

	"forma/config"
	"forma/database"
	"forma/middleware"
	courseModels "forma/models/course"
	userValidator "forma/validators/userValidator"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type preferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func decodePreferences(raw datatypes.JSON) preferences {
	prefs := preferences{Language: "fr", Theme: "light"}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &prefs); err != nil {
			log.Printf("Error decoding user preferences: %v", err)
		}
	}
	return prefs
}

// GetMe returns the profile plus aggregate course statistics.
func GetMe(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var records []courseModels.CourseProgress
	if err := database.Database.Db.Preload("Course").Where("user_id = ?", user.ID).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress records!", nil)
	}

	total := len(records)
	completed := 0
	var progressSum float64
	var completionDays float64
	completionCount := 0

	courses := make([]fiber.Map, 0, total)
	for _, record := range records {
		progressSum += record.Progress
		if record.IsCompleted {
			completed++
			if record.CompletionDate != nil {
				completionDays += record.CompletionDate.Sub(record.StartDate).Hours() / 24
				completionCount++
			}
		}

		title := ""
		if record.Course != nil {
			title = record.Course.Title
		}
		courses = append(courses, fiber.Map{
			"course_title":    title,
			"progress":        record.Progress,
			"start_date":      record.StartDate,
			"completion_date": record.CompletionDate,
			"last_accessed":   record.LastAccessed,
			"status":          record.Status,
			"duration_days":   int(time.Since(record.StartDate).Hours() / 24),
		})
	}

	averageProgress := 0.0
	if total > 0 {
		averageProgress = progressSum / float64(total)
	}
	averageCompletionDays := 0.0
	if completionCount > 0 {
		averageCompletionDays = completionDays / float64(completionCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"profile": fiber.Map{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
			"department": user.Department,
			"role":       user.Role,
		},
		"statistics": fiber.Map{
			"total_courses":           total,
			"completed_courses":       completed,
			"average_progress":        averageProgress,
			"average_completion_days": averageCompletionDays,
		},
		"courses": courses,
	})
}

// GetPersonalInfo returns the user's contact details.
func GetPersonalInfo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Personal information fetched successfully!", fiber.Map{
		"phone": user.Phone,
	})
}

// UpdatePersonalInfo updates the user's contact details.
func UpdatePersonalInfo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPersonalInfo").(*userValidator.PersonalInfoRequest)

	if reqData.Phone != nil {
		user.Phone = *reqData.Phone
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update personal information!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Personal information updated successfully!", nil)
}

// GetPreferences returns language and theme.
func GetPreferences(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences fetched successfully!", decodePreferences(user.Preferences))
}

// UpdatePreferences updates language and/or theme.
func UpdatePreferences(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPreferences").(*userValidator.PreferencesRequest)

	prefs := decodePreferences(user.Preferences)
	if reqData.Language != nil {
		prefs.Language = *reqData.Language
	}
	if reqData.Theme != nil {
		prefs.Theme = *reqData.Theme
	}

	encoded, err := json.Marshal(prefs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update preferences!", nil)
	}
	user.Preferences = datatypes.JSON(encoded)

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences updated successfully!", prefs)
}

// UpdatePassword changes the user's password after checking the current
// one. Confirmation mismatch is caught by the validator.
func UpdatePassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPassword").(*userValidator.PasswordUpdateRequest)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Current password is incorrect!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	user.Password = string(hashed)
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}
