package progress

import (
	"errors"

	"gorm.io/gorm"
)

// ModuleAverage is the cross-student mean for one module
type ModuleAverage struct {
	ModuleID          uint    `json:"module_id"`
	Title             string  `json:"title"`
	AveragePercentage float64 `json:"average_percentage"`
}

// Dashboard is the instructor-facing rollup for one course
type Dashboard struct {
	CourseID          uint            `json:"course_id"`
	TotalStudents     int             `json:"total_students"`
	Completed         int             `json:"completed"`
	InProgress        int             `json:"in_progress"`
	NotStarted        int             `json:"not_started"`
	AveragePercentage float64         `json:"average_percentage"`
	PerModuleAverages []ModuleAverage `json:"per_module_averages"`
}

// InstructorDashboard classifies every enrolled student by their course
// percentage (Completed at 100, InProgress above 0, NotStarted at 0) and
// averages progress course-wide and per module. Module averages run over
// recorded aggregates only; a module nobody touched reports 0.
func (s *Service) InstructorDashboard(courseID uint) (*Dashboard, error) {
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

	dash := &Dashboard{
		CourseID:          courseID,
		PerModuleAverages: make([]ModuleAverage, 0, len(modules)),
	}

	for _, module := range modules {
		rows, err := store.ModuleProgressByModule(module.ID)
		if err != nil {
			return nil, err
		}
		avg := float64(0)
		if len(rows) > 0 {
			sum := float64(0)
			for _, r := range rows {
				sum += r.Percentage
			}
			avg = round2(sum / float64(len(rows)))
		}
		dash.PerModuleAverages = append(dash.PerModuleAverages, ModuleAverage{
			ModuleID:          module.ID,
			Title:             module.Title,
			AveragePercentage: avg,
		})
	}

	enrollments, err := store.EnrollmentsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	dash.TotalStudents = len(enrollments)
	sum := float64(0)
	for _, e := range enrollments {
		snap, err := s.GetCourseProgress(e.StudentID, courseID)
		if err != nil {
			return nil, err
		}
		sum += snap.Percentage
		switch {
		case snap.Percentage >= 100:
			dash.Completed++
		case snap.Percentage > 0:
			dash.InProgress++
		default:
			dash.NotStarted++
		}
	}
	if dash.TotalStudents > 0 {
		dash.AveragePercentage = round2(sum / float64(dash.TotalStudents))
	}

	return dash, nil
}
