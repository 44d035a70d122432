package progress

import (
	courseModels "edumentor/models/course"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccess(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	studentID := createStudent(t, db, "ada")
	courseID := createCourse(t, db, "Go Basics")

	ok, err := svc.CanAccess(studentID, courseID)
	require.NoError(t, err)
	assert.False(t, ok, "no enrollment row must deny access")

	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	ok, err = svc.CanAccess(studentID, courseID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Nonexistent student and course simply have no rows
	ok, err = svc.CanAccess(9999, courseID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanAccess(studentID, 9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAccessCancelledPolicy(t *testing.T) {
	db := newTestDB(t)

	studentID := createStudent(t, db, "grace")
	courseID := createCourse(t, db, "Go Basics")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentCancelled)

	// Default policy: cancelled enrollments no longer pass the gate
	ok, err := New(db).CanAccess(studentID, courseID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Legacy policy: any enrollment row is enough
	legacy := NewWithOptions(db, Options{AllowCancelledEnrollment: true})
	ok, err = legacy.CanAccess(studentID, courseID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAccessCompletedEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	studentID := createStudent(t, db, "linus")
	courseID := createCourse(t, db, "Go Basics")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentCompleted)

	ok, err := svc.CanAccess(studentID, courseID)
	require.NoError(t, err)
	assert.True(t, ok, "completed students keep access to course content")
}
