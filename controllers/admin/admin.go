package adminController

import (
	"forma/database"
	"forma/middleware"
	"forma/models"
	"forma/utils"
	userValidator "forma/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// GetPendingUsers lists accounts waiting for approval.
func GetPendingUsers(c *fiber.Ctx) error {
	var pending []models.User
	if err := database.Database.Db.Where("is_approved = ?", false).Order("created_at desc").Find(&pending).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending users fetched successfully!", pending)
}

// ApproveUser sets a user's approval flag and notifies them. The email
// side effect is best-effort and fired off-request.
func ApproveUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	reqData := c.Locals("validatedApproval").(*userValidator.ApprovalRequest)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", targetID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsApproved = *reqData.IsApproved
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	utils.NotifyAccountApproval(db, user.ID, user.IsApproved)
	go utils.SendAccountDecisionEmail(user.Email, user.FullName(), user.IsApproved)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User approval updated successfully!", user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func DeleteUser(c *fiber.Ctx) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := c.Locals("targetUserID").(uint)
	if targetID == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Admin cannot delete their own account!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", targetID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// UpdateUser lets an admin edit another user's name, department or role.
func UpdateUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	reqData := c.Locals("validatedUserUpdate").(*userValidator.AdminUserUpdateRequest)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", targetID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}
	if reqData.Department != nil {
		user.Department = *reqData.Department
	}
	if reqData.Role != nil {
		user.Role = *reqData.Role
	}

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User information updated successfully!", fiber.Map{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"department": user.Department,
		"role":       user.Role,
	})
}

// GetAllUsers is the public user directory used for message addressing.
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_approved = ?", true).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}
