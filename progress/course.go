package progress

import (
	"errors"

	"gorm.io/gorm"
)

// ModuleBreakdown is one module's line in a course snapshot
type ModuleBreakdown struct {
	ModuleID       uint    `json:"module_id"`
	Title          string  `json:"title"`
	Percentage     float64 `json:"percentage"`
	CompletedCount int     `json:"completed_count"`
	TotalCount     int     `json:"total_count"`
	Completed      bool    `json:"completed"`
}

// CourseSnapshot is the course-level aggregate, computed fresh on every
// read from the stored module aggregates. It is never persisted.
type CourseSnapshot struct {
	CourseID         uint              `json:"course_id"`
	Percentage       float64           `json:"percentage"`
	Completed        bool              `json:"completed"`
	TotalModules     int               `json:"total_modules"`
	ModulesCompleted int               `json:"modules_completed"`
	Modules          []ModuleBreakdown `json:"modules"`
}

// GetCourseProgress derives a student's course progress as the mean of the
// module percentages. A module the student never touched counts as 0 (with
// SkipEmptyModules, modules without content drop out of the mean instead).
// The course is complete only when the mean reaches 100 AND every module has
// a recorded completed aggregate.
func (s *Service) GetCourseProgress(studentID, courseID uint) (*CourseSnapshot, error) {
	store := s.store()

	if _, err := store.CourseByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	modules, err := store.ModulesByCourse(courseID)
	if err != nil {
		return nil, err
	}

	snap := &CourseSnapshot{
		CourseID:     courseID,
		TotalModules: len(modules),
		Modules:      make([]ModuleBreakdown, 0, len(modules)),
	}

	sum := float64(0)
	counted := 0
	recordedCompleted := 0

	for _, module := range modules {
		breakdown := ModuleBreakdown{ModuleID: module.ID, Title: module.Title}

		row, err := store.ModuleProgressFor(module.ID, studentID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			total, cerr := store.ContentCount(module.ID)
			if cerr != nil {
				return nil, cerr
			}
			breakdown.TotalCount = int(total)
		case err != nil:
			return nil, err
		default:
			breakdown.Percentage = row.Percentage
			breakdown.CompletedCount = row.CompletedCount
			breakdown.TotalCount = row.TotalCount
			breakdown.Completed = row.Completed
			if row.Completed {
				recordedCompleted++
			}
		}

		if s.opts.SkipEmptyModules && breakdown.TotalCount == 0 {
			snap.Modules = append(snap.Modules, breakdown)
			continue
		}
		sum += breakdown.Percentage
		counted++
		snap.Modules = append(snap.Modules, breakdown)
	}

	if counted > 0 {
		snap.Percentage = round2(sum / float64(counted))
	}
	snap.ModulesCompleted = recordedCompleted
	snap.Completed = snap.Percentage >= 100 && len(modules) > 0 && recordedCompleted == len(modules)

	return snap, nil
}

// CourseOverviewEntry pairs an enrollment with its course snapshot
type CourseOverviewEntry struct {
	CourseID   uint           `json:"course_id"`
	Title      string         `json:"title"`
	Level      string         `json:"level"`
	Status     string         `json:"status"`
	EnrolledAt string         `json:"enrolled_at"`
	Progress   CourseSnapshot `json:"progress"`
}

// StudentOverview computes the course snapshots for every course the
// student is enrolled in, for the student dashboard.
func (s *Service) StudentOverview(studentID uint) ([]CourseOverviewEntry, error) {
	store := s.store()

	ok, err := store.StudentExists(studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	enrollments, err := store.EnrollmentsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	overview := make([]CourseOverviewEntry, 0, len(enrollments))
	for _, e := range enrollments {
		c, err := store.CourseByID(e.CourseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snap, err := s.GetCourseProgress(studentID, e.CourseID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, CourseOverviewEntry{
			CourseID:   e.CourseID,
			Title:      c.Title,
			Level:      c.Level,
			Status:     e.Status,
			EnrolledAt: e.CreatedAt.Format("2006-01-02"),
			Progress:   *snap,
		})
	}
	return overview, nil
}
