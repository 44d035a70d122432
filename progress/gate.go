package progress

import (
	courseModels "edumentor/models/course"
	"fmt"
)

// CanAccess decides whether a student may reach a course's content. It is
// side-effect free: an enrollment row for the pair grants access, absence
// denies it, and a nonexistent student or course simply has no row. With
// AllowCancelledEnrollment unset, a cancelled enrollment no longer passes.
func (s *Service) CanAccess(studentID, courseID uint) (bool, error) {
	q := s.db.Model(&courseModels.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false)

	if !s.opts.AllowCancelledEnrollment {
		q = q.Where("status <> ?", courseModels.EnrollmentCancelled)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return count > 0, nil
}
