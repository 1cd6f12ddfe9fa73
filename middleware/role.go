package middleware

import (
	"forma/database"
	"forma/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser resolves the authenticated user stashed by RequireRoles.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("currentUser").(*models.User)
	return user, ok
}

// RequireRoles resolves the bearer credential to exactly one active,
// approved user and checks its role against the allow-list. An empty
// allow-list only requires authentication. The resolved user is stored in
// c.Locals("currentUser").
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if !user.IsApproved {
			return JsonResponse(c, fiber.StatusForbidden, false, "Account not approved yet!", nil)
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if user.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}
