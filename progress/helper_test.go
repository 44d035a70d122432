package progress

import (
	"edumentor/models"
	courseModels "edumentor/models/course"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema.
// TranslateError gives the same gorm.ErrDuplicatedKey behavior the
// postgres driver provides in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "progress.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Content{},
		&courseModels.Enrollment{},
		&courseModels.ContentProgress{},
		&courseModels.ModuleProgress{},
		&courseModels.ContentResponse{},
		&courseModels.Certificate{},
	))
	return db
}

func createStudent(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	u := models.User{Name: name, Email: name + "@example.com", Role: "STUDENT", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func createCourse(t *testing.T, db *gorm.DB, title string) uint {
	t.Helper()
	instructor := models.User{Name: title + " instructor", Email: title + "-instructor@example.com", Role: "INSTRUCTOR", IsActive: true}
	require.NoError(t, db.Create(&instructor).Error)
	c := courseModels.Course{InstructorID: instructor.ID, Title: title, Level: "BASIC", IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int) uint {
	t.Helper()
	m := courseModels.Module{CourseID: courseID, Title: title, OrderIndex: order, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func createContent(t *testing.T, db *gorm.DB, moduleID uint, title string) uint {
	t.Helper()
	c := courseModels.Content{ModuleID: moduleID, Title: title, Kind: "READING", Weight: 1}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func enroll(t *testing.T, db *gorm.DB, studentID, courseID uint, status string) {
	t.Helper()
	e := courseModels.Enrollment{StudentID: studentID, CourseID: courseID, Status: status}
	require.NoError(t, db.Create(&e).Error)
}

// moduleWithContents seeds a course, one module and n content items,
// returning the course, module and content ids
func moduleWithContents(t *testing.T, db *gorm.DB, n int) (uint, uint, []uint) {
	t.Helper()
	courseID := createCourse(t, db, "Go Basics")
	moduleID := createModule(t, db, courseID, "M1", 1)
	contents := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		contents = append(contents, createContent(t, db, moduleID, "item"))
	}
	return courseID, moduleID, contents
}
