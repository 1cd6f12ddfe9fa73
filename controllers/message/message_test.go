package messageController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"forma/config"
	messageController "forma/controllers/message"
	"forma/database"
	"forma/middleware"
	"forma/models"
	"forma/routers/messageRoutes"
	"forma/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMessageApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		AdminEmail:    "admin@forma.local",
		AdminPassword: "admin123",
		UploadDir:     t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "forma_test.db")), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	messageController.Attachments = utils.NewLocalAttachmentStore(config.AppConfig.UploadDir)

	app := fiber.New()
	messageRoutes.SetupMessageRoutes(app)
	return app
}

func createMsgUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Role:       models.RoleProf,
		Department: "CS",
		Password:   "x",
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func msgBearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.FullName(), user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func sendMessage(t *testing.T, app *fiber.App, sender models.User, receiverID uint, content, attachmentName string) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", content))
	require.NoError(t, writer.WriteField("receiver_id", fmt.Sprintf("%d", receiverID)))
	if attachmentName != "" {
		part, err := writer.CreateFormFile("file", attachmentName)
		require.NoError(t, err)
		_, err = part.Write([]byte("attachment payload"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/messages/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", msgBearer(t, sender))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func msgGet(t *testing.T, app *fiber.App, path string, user models.User) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", msgBearer(t, user))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func loadMessage(t *testing.T, id uint) models.Message {
	t.Helper()
	var message models.Message
	require.NoError(t, database.Database.Db.First(&message, id).Error)
	return message
}

func TestSendMessage(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "Bonjour Bob", "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	message := loadMessage(t, 1)
	assert.Equal(t, alice.ID, message.SenderID)
	assert.Equal(t, bob.ID, message.ReceiverID)
	assert.Equal(t, "Bonjour Bob", message.Content)
	assert.False(t, message.IsRead)
	assert.Empty(t, message.FilePath)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")

	resp := sendMessage(t, app, alice, 999, "Personne ?", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSendMessageStoresAttachment(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "Voici le rapport", "rapport.pdf")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	message := loadMessage(t, 1)
	require.NotEmpty(t, message.FilePath)
	assert.Contains(t, message.FilePath, filepath.Join("messages", "1"))
	assert.Contains(t, filepath.Base(message.FilePath), "rapport.pdf")

	data, err := os.ReadFile(message.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "attachment payload", string(data))
}

func TestReceiverFetchMarksReadOnce(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "Bonjour", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The sender reading their own message does not mark it
	resp = msgGet(t, app, "/messages/1", alice)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, loadMessage(t, 1).IsRead)

	resp = msgGet(t, app, "/messages/1", bob)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, loadMessage(t, 1).IsRead)
}

func TestThirdPartyCannotReadMessage(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")
	eve := createMsgUser(t, "eve@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "Secret", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = msgGet(t, app, "/messages/1", eve)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkMessageReadReceiverOnly(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "Bonjour", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPut, "/messages/1/read", nil)
	req.Header.Set("Authorization", msgBearer(t, alice))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPut, "/messages/1/read", nil)
	req.Header.Set("Authorization", msgBearer(t, bob))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, loadMessage(t, 1).IsRead)
}

func TestListMessages(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	require.Equal(t, fiber.StatusCreated, sendMessage(t, app, alice, bob.ID, "un", "").StatusCode)
	require.Equal(t, fiber.StatusCreated, sendMessage(t, app, alice, bob.ID, "deux", "").StatusCode)
	require.Equal(t, fiber.StatusCreated, sendMessage(t, app, bob, alice.ID, "trois", "").StatusCode)

	resp := msgGet(t, app, "/messages/?type=received", bob)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["data"].([]interface{}), 2)

	resp = msgGet(t, app, "/messages/?type=sent", bob)
	defer resp.Body.Close()
	body = map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["data"].([]interface{}), 1)

	resp = msgGet(t, app, "/messages/?type=bogus", bob)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteMessageRemovesAttachment(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "avec fichier", "notes.txt")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	message := loadMessage(t, 1)
	require.FileExists(t, message.FilePath)
	messageDir := filepath.Dir(message.FilePath)

	req := httptest.NewRequest(http.MethodDelete, "/messages/1", nil)
	req.Header.Set("Authorization", msgBearer(t, alice))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NoFileExists(t, message.FilePath)
	_, err = os.Stat(messageDir)
	assert.True(t, os.IsNotExist(err))

	var count int64
	require.NoError(t, database.Database.Db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetMessageFile(t *testing.T) {
	app := setupMessageApp(t)
	alice := createMsgUser(t, "alice@forma.local")
	bob := createMsgUser(t, "bob@forma.local")

	resp := sendMessage(t, app, alice, bob.ID, "avec fichier", "notes.txt")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = msgGet(t, app, "/messages/1/file", bob)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	// Fetching the file as the receiver also marks the message read
	assert.True(t, loadMessage(t, 1).IsRead)

	// No attachment on this one
	resp = sendMessage(t, app, alice, bob.ID, "sans fichier", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = msgGet(t, app, "/messages/2/file", bob)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
