package utils

import (
	"path/filepath"
	"testing"

	"forma/config"
	"forma/database"
	"forma/models"
	courseModels "forma/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotifyDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role, department string) models.User {
	t.Helper()
	user := models.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Role:       role,
		Department: department,
		Password:   "x",
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}

func TestNotifyCourseCreatedFanOut(t *testing.T) {
	db := setupNotifyDB(t)

	admin := seedUser(t, db, config.AppConfig.AdminEmail, models.RoleAdmin, "RH")
	instructor := seedUser(t, db, "prof1@forma.local", models.RoleProf, "CS")
	profSameDept := seedUser(t, db, "prof2@forma.local", models.RoleProf, "CS")
	profOtherDept := seedUser(t, db, "prof3@forma.local", models.RoleProf, "Math")
	employerSameDept := seedUser(t, db, "emp1@forma.local", models.RoleEmployer, "CS")
	employerOtherDept := seedUser(t, db, "emp2@forma.local", models.RoleEmployer, "Math")

	course := courseModels.Course{Title: "Intro", Department: "CS", InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	NotifyCourseCreated(db, &course, &instructor)

	adminNotifs := notificationsFor(t, db, admin.ID)
	require.Len(t, adminNotifs, 1)
	assert.Equal(t, models.NotifNewCourse, adminNotifs[0].Type)
	require.NotNil(t, adminNotifs[0].RelatedCourseID)
	assert.Equal(t, course.ID, *adminNotifs[0].RelatedCourseID)

	// Every professor in the department gets exactly one, the instructor
	// included
	for _, prof := range []models.User{instructor, profSameDept} {
		notifs := notificationsFor(t, db, prof.ID)
		require.Len(t, notifs, 1)
		assert.Equal(t, models.NotifDeptNewCourse, notifs[0].Type)
	}

	empNotifs := notificationsFor(t, db, employerSameDept.ID)
	require.Len(t, empNotifs, 1)
	assert.Equal(t, models.NotifCourseAvailable, empNotifs[0].Type)

	assert.Empty(t, notificationsFor(t, db, profOtherDept.ID))
	assert.Empty(t, notificationsFor(t, db, employerOtherDept.ID))
}

func TestNotifyCourseCreatedWithoutAdmin(t *testing.T) {
	db := setupNotifyDB(t)

	instructor := seedUser(t, db, "prof@forma.local", models.RoleProf, "CS")
	prof := seedUser(t, db, "prof2@forma.local", models.RoleProf, "CS")

	course := courseModels.Course{Title: "Intro", Department: "CS", InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	// No admin account: the admin notification is silently skipped, the
	// department fan-out still happens
	NotifyCourseCreated(db, &course, &instructor)

	var total int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)

	assert.Len(t, notificationsFor(t, db, prof.ID), 1)
}

func TestNotifyCourseDeletedTargetsAdminOnly(t *testing.T) {
	db := setupNotifyDB(t)

	admin := seedUser(t, db, config.AppConfig.AdminEmail, models.RoleAdmin, "RH")
	prof := seedUser(t, db, "prof@forma.local", models.RoleProf, "CS")

	course := courseModels.Course{Title: "Intro", Department: "CS", InstructorID: prof.ID}
	require.NoError(t, db.Create(&course).Error)

	NotifyCourseDeleted(db, &course)

	adminNotifs := notificationsFor(t, db, admin.ID)
	require.Len(t, adminNotifs, 1)
	assert.Equal(t, models.NotifCourseDeleted, adminNotifs[0].Type)
	assert.Empty(t, notificationsFor(t, db, prof.ID))
}

func TestNotifyConferenceStatus(t *testing.T) {
	db := setupNotifyDB(t)

	prof := seedUser(t, db, "prof@forma.local", models.RoleProf, "CS")

	NotifyConferenceStatus(db, prof.ID, "GoLab", true)
	NotifyConferenceStatus(db, prof.ID, "PyCon", false)

	notifs := notificationsFor(t, db, prof.ID)
	require.Len(t, notifs, 2)
	for _, n := range notifs {
		assert.Equal(t, models.NotifConferenceStatus, n.Type)
		assert.False(t, n.IsRead)
	}
}

func TestNotifyProgressTargetsLearnerOnly(t *testing.T) {
	db := setupNotifyDB(t)

	seedUser(t, db, config.AppConfig.AdminEmail, models.RoleAdmin, "RH")
	learner := seedUser(t, db, "emp@forma.local", models.RoleEmployer, "CS")
	prof := seedUser(t, db, "prof@forma.local", models.RoleProf, "CS")

	course := courseModels.Course{Title: "Intro", Department: "CS", InstructorID: prof.ID}
	require.NoError(t, db.Create(&course).Error)

	NotifyCourseProgress(db, learner.ID, &course, 42.5)

	notifs := notificationsFor(t, db, learner.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifProgressUpdated, notifs[0].Type)
	assert.Contains(t, notifs[0].Message, "42.5")

	var total int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}
