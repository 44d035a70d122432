package progress

import (
	"edumentor/models"
	courseModels "edumentor/models/course"
	"fmt"

	"gorm.io/gorm"
)

// Store wraps a gorm handle (connection or transaction) with the typed
// lookups the progress engine needs. Relationships are resolved by explicit
// foreign-key queries, never by preloaded object graphs.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store over the given gorm handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// StudentExists reports whether an active user row exists for the id
func (s *Store) StudentExists(studentID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", studentID, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// ContentByID fetches a content item by id
func (s *Store) ContentByID(contentID uint) (*courseModels.Content, error) {
	var content courseModels.Content
	err := s.db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error
	if err != nil {
		return nil, fmt.Errorf("fetch content %d: %w", contentID, err)
	}
	return &content, nil
}

// ModuleByID fetches a module by id
func (s *Store) ModuleByID(moduleID uint) (*courseModels.Module, error) {
	var module courseModels.Module
	err := s.db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error
	if err != nil {
		return nil, fmt.Errorf("fetch module %d: %w", moduleID, err)
	}
	return &module, nil
}

// CourseByID fetches a course by id
func (s *Store) CourseByID(courseID uint) (*courseModels.Course, error) {
	var c courseModels.Course
	err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&c).Error
	if err != nil {
		return nil, fmt.Errorf("fetch course %d: %w", courseID, err)
	}
	return &c, nil
}

// ModulesByCourse lists a course's modules in display order
func (s *Store) ModulesByCourse(courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error
	if err != nil {
		return nil, fmt.Errorf("list modules of course %d: %w", courseID, err)
	}
	return modules, nil
}

// ContentCount counts the content items currently belonging to a module.
// Recomputed on every aggregation pass, never cached.
func (s *Store) ContentCount(moduleID uint) (int64, error) {
	var count int64
	err := s.db.Model(&courseModels.Content{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count contents of module %d: %w", moduleID, err)
	}
	return count, nil
}

// CompletedCount counts a student's completions within a module, joined
// through the content table
func (s *Store) CompletedCount(moduleID, studentID uint) (int64, error) {
	var count int64
	err := s.db.Model(&courseModels.ContentProgress{}).
		Joins("JOIN contents ON content_progresses.content_id = contents.id").
		Where("content_progresses.student_id = ? AND contents.module_id = ? AND contents.is_deleted = ?",
			studentID, moduleID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completions of module %d: %w", moduleID, err)
	}
	return count, nil
}

// ContentProgressFor fetches the completion row for a (content, student) pair
func (s *Store) ContentProgressFor(contentID, studentID uint) (*courseModels.ContentProgress, error) {
	var p courseModels.ContentProgress
	err := s.db.Where("content_id = ? AND student_id = ?", contentID, studentID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateContentProgress inserts a completion row. A duplicate pair surfaces
// as gorm.ErrDuplicatedKey through the unique index.
func (s *Store) CreateContentProgress(p *courseModels.ContentProgress) error {
	return s.db.Create(p).Error
}

// ModuleProgressFor fetches the stored aggregate for a (module, student) pair
func (s *Store) ModuleProgressFor(moduleID, studentID uint) (*courseModels.ModuleProgress, error) {
	var p courseModels.ModuleProgress
	err := s.db.Where("module_id = ? AND student_id = ?", moduleID, studentID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ModuleProgressByModule lists all students' stored aggregates for a module
func (s *Store) ModuleProgressByModule(moduleID uint) ([]courseModels.ModuleProgress, error) {
	var rows []courseModels.ModuleProgress
	err := s.db.Where("module_id = ?", moduleID).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list module progress %d: %w", moduleID, err)
	}
	return rows, nil
}

// EnrollmentFor fetches the enrollment row for a (student, course) pair
func (s *Store) EnrollmentFor(studentID, courseID uint) (*courseModels.Enrollment, error) {
	var e courseModels.Enrollment
	err := s.db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EnrollmentsByCourse lists the enrollments of a course
func (s *Store) EnrollmentsByCourse(courseID uint) ([]courseModels.Enrollment, error) {
	var rows []courseModels.Enrollment
	err := s.db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list enrollments of course %d: %w", courseID, err)
	}
	return rows, nil
}

// EnrollmentsByStudent lists a student's enrollments
func (s *Store) EnrollmentsByStudent(studentID uint) ([]courseModels.Enrollment, error) {
	var rows []courseModels.Enrollment
	err := s.db.Where("student_id = ? AND is_deleted = ?", studentID, false).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list enrollments of student %d: %w", studentID, err)
	}
	return rows, nil
}

// ResponseFor fetches the answer document for a (content, student) pair
func (s *Store) ResponseFor(contentID, studentID uint) (*courseModels.ContentResponse, error) {
	var r courseModels.ContentResponse
	err := s.db.Where("content_id = ? AND student_id = ?", contentID, studentID).First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}
