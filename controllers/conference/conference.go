package conferenceController

import (
	"forma/database"
	"forma/middleware"
	"forma/models"
	"forma/utils"
	conferenceValidator "forma/validators/conference"

	"github.com/gofiber/fiber/v2"
)

// RequestConference files a conference request. Admin-authored requests
// skip straight to approved; everything else starts pending.
func RequestConference(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedConference").(*conferenceValidator.CreateConferenceRequest)

	status := models.ConferencePending
	if user.Role == models.RoleAdmin {
		status = models.ConferenceApproved
	}

	conference := models.ConferenceRequest{
		Name:          reqData.Name,
		Description:   reqData.Description,
		Link:          reqData.Link,
		Type:          reqData.Type,
		Department:    reqData.Department,
		Date:          reqData.ParsedDate,
		Time:          reqData.Time,
		RequestedByID: user.ID,
		Status:        status,
	}

	db := database.Database.Db
	if err := db.Create(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create conference request!", nil)
	}

	utils.NotifyConferenceRequest(db, user, conference.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Conference request created successfully!", conference)
}

// ApproveConference transitions a pending request to approved or denied.
// Terminal states never transition again.
func ApproveConference(c *fiber.Ctx) error {
	conferenceID := c.Locals("conferenceID").(uint)
	reqData := c.Locals("validatedApproval").(*conferenceValidator.ApproveConferenceRequest)

	db := database.Database.Db

	var conference models.ConferenceRequest
	if err := db.Where("id = ?", conferenceID).First(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Conference not found!", nil)
	}

	if conference.Status != models.ConferencePending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Conference request has already been decided!", nil)
	}

	if *reqData.Approve {
		conference.Status = models.ConferenceApproved
	} else {
		conference.Status = models.ConferenceDenied
	}

	if err := db.Save(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update conference request!", nil)
	}

	utils.NotifyConferenceStatus(db, conference.RequestedByID, conference.Name, *reqData.Approve)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conference request updated successfully!", conference)
}

// GetPendingConferences lists pending requests for the admin.
func GetPendingConferences(c *fiber.Ctx) error {
	var pending []models.ConferenceRequest
	if err := database.Database.Db.Preload("RequestedBy").
		Where("status = ?", models.ConferencePending).
		Order("date").Find(&pending).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch conference requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending conference requests fetched successfully!", pending)
}

// GetMyConferences lists the professor's own requests, newest first.
func GetMyConferences(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var conferences []models.ConferenceRequest
	if err := database.Database.Db.Preload("RequestedBy").
		Where("requested_by_id = ?", user.ID).
		Order("date desc").Find(&conferences).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch conference requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conference requests fetched successfully!", conferences)
}

// GetCalendar lists approved conferences. Employers only see their own
// department.
func GetCalendar(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Preload("RequestedBy").Where("status = ?", models.ConferenceApproved)
	if user.Role == models.RoleEmployer {
		db = db.Where("department = ?", user.Department)
	}

	var conferences []models.ConferenceRequest
	if err := db.Order("date").Find(&conferences).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch calendar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Calendar fetched successfully!", conferences)
}

// GetConference returns one conference; employers are department-scoped.
func GetConference(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	conferenceID := c.Locals("conferenceID").(uint)

	var conference models.ConferenceRequest
	if err := database.Database.Db.Preload("RequestedBy").Where("id = ?", conferenceID).First(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Conference not found!", nil)
	}

	if user.Role == models.RoleEmployer && conference.Department != user.Department {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You don't have access to this conference!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conference fetched successfully!", conference)
}

// DeleteConference removes a request. Only the original requester may
// delete, regardless of status.
func DeleteConference(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	conferenceID := c.Locals("conferenceID").(uint)

	db := database.Database.Db

	var conference models.ConferenceRequest
	if err := db.Where("id = ? AND requested_by_id = ?", conferenceID, user.ID).First(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Conference request not found or you are not allowed to delete it!", nil)
	}

	if err := db.Delete(&conference).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete conference request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conference request deleted successfully!", nil)
}
