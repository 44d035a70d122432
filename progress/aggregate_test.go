package progress

import (
	courseModels "edumentor/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleProgressScenario(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	// Module M1 with 4 content items, student completes 2, then the rest
	courseID, moduleID, contents := moduleWithContents(t, db, 4)
	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	for _, id := range contents[:2] {
		_, err := svc.MarkCompleted(studentID, id)
		require.NoError(t, err)
	}

	snap, err := svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, snap.Percentage)
	assert.Equal(t, 2, snap.CompletedCount)
	assert.Equal(t, 4, snap.TotalCount)
	assert.False(t, snap.Completed)

	for _, id := range contents[2:] {
		_, err := svc.MarkCompleted(studentID, id)
		require.NoError(t, err)
	}

	snap, err = svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, snap.Percentage)
	assert.True(t, snap.Completed)
}

func TestModulePercentageRounding(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, moduleID, contents := moduleWithContents(t, db, 3)
	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	_, err := svc.MarkCompleted(studentID, contents[0])
	require.NoError(t, err)

	snap, err := svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, snap.Percentage, "percentage rounds to two decimals")
}

func TestEmptyModuleNeverDividesByZero(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID := createCourse(t, db, "Go Basics")
	moduleID := createModule(t, db, courseID, "empty", 1)
	studentID := createStudent(t, db, "s1")

	snap, err := svc.RecomputeModule(moduleID, studentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.Percentage)
	assert.Equal(t, 0, snap.TotalCount)
	assert.False(t, snap.Completed)
}

func TestRecomputeModuleIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, moduleID, contents := moduleWithContents(t, db, 2)
	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	_, err := svc.MarkCompleted(studentID, contents[0])
	require.NoError(t, err)

	first, err := svc.RecomputeModule(moduleID, studentID)
	require.NoError(t, err)
	second, err := svc.RecomputeModule(moduleID, studentID)
	require.NoError(t, err)
	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Equal(t, first.CompletedCount, second.CompletedCount)

	// Redundant passes never create duplicate aggregate rows
	var count int64
	require.NoError(t, db.Model(&courseModels.ModuleProgress{}).
		Where("module_id = ? AND student_id = ?", moduleID, studentID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestModuleTotalTracksContentSet(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, moduleID, contents := moduleWithContents(t, db, 2)
	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	for _, id := range contents {
		_, err := svc.MarkCompleted(studentID, id)
		require.NoError(t, err)
	}

	snap, err := svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.True(t, snap.Completed)

	// A content item added later must deflate the stored percentage on the
	// next pass: totals are recomputed, never cached
	createContent(t, db, moduleID, "new item")
	snap, err = svc.RecomputeModule(moduleID, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalCount)
	assert.Equal(t, 66.67, snap.Percentage)
	assert.False(t, snap.Completed)
}

func TestCourseProgressMean(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	// Course C1: module M1 at 100%, module M2 never touched
	courseID := createCourse(t, db, "C1")
	m1 := createModule(t, db, courseID, "M1", 1)
	m2 := createModule(t, db, courseID, "M2", 2)
	c1 := createContent(t, db, m1, "a")
	c2 := createContent(t, db, m1, "b")
	createContent(t, db, m2, "c")

	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	for _, id := range []uint{c1, c2} {
		_, err := svc.MarkCompleted(studentID, id)
		require.NoError(t, err)
	}

	snap, err := svc.GetCourseProgress(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, snap.Percentage, "untouched module counts as 0 in the mean")
	assert.False(t, snap.Completed)
	assert.Equal(t, 2, snap.TotalModules)
	assert.Equal(t, 1, snap.ModulesCompleted)
	require.Len(t, snap.Modules, 2)
	assert.Equal(t, m1, snap.Modules[0].ModuleID)
	assert.Equal(t, 100.0, snap.Modules[0].Percentage)
	assert.Equal(t, m2, snap.Modules[1].ModuleID)
	assert.Equal(t, 0.0, snap.Modules[1].Percentage)
}

func TestCourseCompletedRequiresEveryModulePass(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID := createCourse(t, db, "C1")
	m1 := createModule(t, db, courseID, "M1", 1)
	createModule(t, db, courseID, "M2", 2) // zero content, no progress pass ever

	content := createContent(t, db, m1, "a")
	studentID := createStudent(t, db, "s1")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	_, err := svc.MarkCompleted(studentID, content)
	require.NoError(t, err)

	// Mean is 50 (100 + 0) / 2; even if the empty module were skipped and
	// the mean reached 100, the missing progress record blocks completion
	snap, err := svc.GetCourseProgress(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, snap.Percentage)
	assert.False(t, snap.Completed)

	skipping := NewWithOptions(db, Options{SkipEmptyModules: true})
	snap, err = skipping.GetCourseProgress(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, snap.Percentage, "empty module drops out of the mean")
	assert.False(t, snap.Completed, "a module without a completed progress record blocks course completion")
}

func TestCourseWithoutModules(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID := createCourse(t, db, "empty course")
	studentID := createStudent(t, db, "s1")

	snap, err := svc.GetCourseProgress(studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.Percentage)
	assert.False(t, snap.Completed)
	assert.Empty(t, snap.Modules)
}

func TestCourseProgressUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	studentID := createStudent(t, db, "s1")
	_, err := svc.GetCourseProgress(studentID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentOverview(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	studentID := createStudent(t, db, "s1")

	courseA := createCourse(t, db, "A")
	mA := createModule(t, db, courseA, "A1", 1)
	contentA := createContent(t, db, mA, "a")

	courseB := createCourse(t, db, "B")
	mB := createModule(t, db, courseB, "B1", 1)
	createContent(t, db, mB, "b")

	enroll(t, db, studentID, courseA, courseModels.EnrollmentActive)
	enroll(t, db, studentID, courseB, courseModels.EnrollmentActive)

	_, err := svc.MarkCompleted(studentID, contentA)
	require.NoError(t, err)

	overview, err := svc.StudentOverview(studentID)
	require.NoError(t, err)
	require.Len(t, overview, 2)

	byTitle := map[string]CourseOverviewEntry{}
	for _, entry := range overview {
		byTitle[entry.Title] = entry
	}
	assert.Equal(t, 100.0, byTitle["A"].Progress.Percentage)
	assert.True(t, byTitle["A"].Progress.Completed)
	assert.Equal(t, 0.0, byTitle["B"].Progress.Percentage)
}
