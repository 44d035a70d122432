package progress

import (
	courseModels "edumentor/models/course"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompletedIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, moduleID, contents := moduleWithContents(t, db, 3)
	studentID := createStudent(t, db, "ada")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	first, err := svc.MarkCompleted(studentID, contents[0])
	require.NoError(t, err)
	assert.False(t, first.AlreadyCompleted)
	assert.False(t, first.CompletedAt.IsZero())

	second, err := svc.MarkCompleted(studentID, contents[0])
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.WithinDuration(t, first.CompletedAt, second.CompletedAt, time.Second)

	// Exactly one row exists for the pair
	var count int64
	require.NoError(t, db.Model(&courseModels.ContentProgress{}).
		Where("content_id = ? AND student_id = ?", contents[0], studentID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Aggregate reflects one completed item, not two
	snap, err := svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CompletedCount)
	assert.Equal(t, 3, snap.TotalCount)
	assert.InDelta(t, 33.33, snap.Percentage, 0.001)
	assert.False(t, snap.Completed)
}

func TestMarkCompletedErrors(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, _, contents := moduleWithContents(t, db, 2)
	studentID := createStudent(t, db, "ada")

	_, err := svc.MarkCompleted(studentID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkCompleted(9999, contents[0])
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Enrolled nowhere: the gate rejects before any write
	_, err = svc.MarkCompleted(studentID, contents[0])
	assert.ErrorIs(t, err, ErrNotEnrolled)

	var count int64
	require.NoError(t, db.Model(&courseModels.ContentProgress{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)
	_, err = svc.MarkCompleted(studentID, contents[0])
	assert.NoError(t, err)
}

func TestMarkCompletedConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, moduleID, contents := moduleWithContents(t, db, 4)
	studentID := createStudent(t, db, "ada")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MarkCompleted(studentID, contents[0])
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// N parallel calls converge to exactly one row and +1 in the aggregate
	var count int64
	require.NoError(t, db.Model(&courseModels.ContentProgress{}).
		Where("content_id = ? AND student_id = ?", contents[0], studentID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	snap, err := svc.GetModuleProgress(studentID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CompletedCount)
	assert.InDelta(t, 25.0, snap.Percentage, 0.001)
}

func TestRecordAnswerSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, _, contents := moduleWithContents(t, db, 2)
	studentID := createStudent(t, db, "ada")
	enroll(t, db, studentID, courseID, courseModels.EnrollmentActive)

	first, err := svc.RecordAnswerSubmission(studentID, contents[0], json.RawMessage(`{"q1":"yes"}`))
	require.NoError(t, err)
	assert.False(t, first.AlreadyCompleted)

	// Submitting again appends the answer but completes nothing new
	second, err := svc.RecordAnswerSubmission(studentID, contents[0], json.RawMessage(`{"q1":"no"}`))
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)

	var response courseModels.ContentResponse
	require.NoError(t, db.Where("content_id = ? AND student_id = ?", contents[0], studentID).First(&response).Error)

	var answers []json.RawMessage
	require.NoError(t, json.Unmarshal(response.Answers, &answers))
	assert.Len(t, answers, 2)
	assert.JSONEq(t, `{"q1":"yes"}`, string(answers[0]))
	assert.JSONEq(t, `{"q1":"no"}`, string(answers[1]))

	var count int64
	require.NoError(t, db.Model(&courseModels.ContentProgress{}).
		Where("content_id = ? AND student_id = ?", contents[0], studentID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordAnswerSubmissionPerStudentDocuments(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	courseID, _, contents := moduleWithContents(t, db, 1)
	ada := createStudent(t, db, "ada")
	grace := createStudent(t, db, "grace")
	enroll(t, db, ada, courseID, courseModels.EnrollmentActive)
	enroll(t, db, grace, courseID, courseModels.EnrollmentActive)

	_, err := svc.RecordAnswerSubmission(ada, contents[0], json.RawMessage(`{"q1":"a"}`))
	require.NoError(t, err)
	_, err = svc.RecordAnswerSubmission(grace, contents[0], json.RawMessage(`{"q1":"b"}`))
	require.NoError(t, err)

	// One document per (content, student) pair; students never share a row
	var count int64
	require.NoError(t, db.Model(&courseModels.ContentResponse{}).
		Where("content_id = ?", contents[0]).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
