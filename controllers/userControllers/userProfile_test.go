package userController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"forma/config"
	"forma/database"
	"forma/middleware"
	"forma/models"
	courseModels "forma/models/course"
	"forma/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserApp(t *testing.T) (*fiber.App, models.User) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		AdminEmail:    "admin@forma.local",
		AdminPassword: "admin123",
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "forma_test.db")), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      "user@forma.local",
		Role:       models.RoleProf,
		Department: "CS",
		Password:   string(hashed),
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	return app, user
}

func userRequest(t *testing.T, app *fiber.App, method, path string, user models.User, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data, _ := body["data"].(map[string]interface{})
	return data
}

func TestGetMeStatistics(t *testing.T) {
	app, user := setupUserApp(t)

	course := courseModels.Course{Title: "Go de base", Department: "CS", InstructorID: user.ID}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	start := time.Now().UTC().Add(-48 * time.Hour)
	done := time.Now().UTC()
	records := []courseModels.CourseProgress{
		{UserID: user.ID, CourseID: course.ID, Progress: 100, Status: courseModels.StatusCompleted, IsCompleted: true, StartDate: start, CompletionDate: &done, LastAccessed: done},
	}
	require.NoError(t, database.Database.Db.Create(&records).Error)

	resp := userRequest(t, app, http.MethodGet, "/users/me", user, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	stats := data["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_courses"])
	assert.Equal(t, float64(1), stats["completed_courses"])
	assert.Equal(t, float64(100), stats["average_progress"])

	courses := data["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Go de base", courses[0].(map[string]interface{})["course_title"])
}

func TestPreferencesDefaults(t *testing.T) {
	app, user := setupUserApp(t)

	resp := userRequest(t, app, http.MethodGet, "/preferences", user, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "fr", data["language"])
	assert.Equal(t, "light", data["theme"])
}

func TestUpdatePreferences(t *testing.T) {
	app, user := setupUserApp(t)

	resp := userRequest(t, app, http.MethodPut, "/preferences", user,
		map[string]string{"theme": "dark"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Theme changed, language kept its default
	resp = userRequest(t, app, http.MethodGet, "/preferences", user, nil)
	data := decodeData(t, resp)
	assert.Equal(t, "fr", data["language"])
	assert.Equal(t, "dark", data["theme"])
}

func TestUpdatePreferencesRejectsUnknownValues(t *testing.T) {
	app, user := setupUserApp(t)

	resp := userRequest(t, app, http.MethodPut, "/preferences", user,
		map[string]string{"language": "de"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = userRequest(t, app, http.MethodPut, "/preferences", user,
		map[string]string{"theme": "neon"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdatePersonalInfo(t *testing.T) {
	app, user := setupUserApp(t)

	resp := userRequest(t, app, http.MethodPut, "/personal-info", user,
		map[string]string{"phone": "+33611111111"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, user.ID).Error)
	assert.Equal(t, "+33611111111", updated.Phone)
}

func TestUpdatePassword(t *testing.T) {
	app, user := setupUserApp(t)

	// Wrong current password
	resp := userRequest(t, app, http.MethodPut, "/password", user, map[string]string{
		"current_password": "wrongpassword",
		"new_password":     "newpassword123",
		"confirm_password": "newpassword123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Confirmation mismatch
	resp = userRequest(t, app, http.MethodPut, "/password", user, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword123",
		"confirm_password": "different123",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = userRequest(t, app, http.MethodPut, "/password", user, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword123",
		"confirm_password": "newpassword123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword123")))
}
