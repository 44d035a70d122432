package progress

import (
	courseModels "edumentor/models/course"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CompletionResult tells the caller whether the completion was fresh or a
// repeat, so the UI can present the correct message.
type CompletionResult struct {
	AlreadyCompleted bool      `json:"already_completed"`
	CompletedAt      time.Time `json:"completed_at"`
}

// errDuplicateCompletion aborts the write transaction when a concurrent
// request inserted the same pair first; the caller folds it into the
// idempotent already-completed result.
var errDuplicateCompletion = errors.New("duplicate completion")

// MarkCompleted records a student's completion of one content item.
// Completing an already-completed item is a no-op: it returns the stored
// timestamp and runs no aggregation. A fresh completion inserts the
// ContentProgress row and recomputes the owning module's aggregate inside
// the same transaction.
func (s *Service) MarkCompleted(studentID, contentID uint) (*CompletionResult, error) {
	store := s.store()

	ok, err := store.StudentExists(studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	content, err := store.ContentByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	module, err := store.ModuleByID(content.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed, err := s.CanAccess(studentID, module.CourseID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotEnrolled
	}

	// Idempotent short-circuit: an existing row means no recomputation
	if existing, err := store.ContentProgressFor(contentID, studentID); err == nil {
		return &CompletionResult{AlreadyCompleted: true, CompletedAt: existing.CompletedAt}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetch content progress: %w", err)
	}

	row := courseModels.ContentProgress{
		ContentID:   contentID,
		StudentID:   studentID,
		Completed:   true,
		CompletedAt: time.Now().UTC(),
		Weight:      content.Weight,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txStore := NewStore(tx)
		if err := txStore.CreateContentProgress(&row); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateCompletion
			}
			return fmt.Errorf("create content progress: %w", err)
		}
		if _, err := recomputeModule(txStore, content.ModuleID, studentID); err != nil {
			return err
		}
		return nil
	})
	if errors.Is(err, errDuplicateCompletion) {
		// Lost the race: converge on the winner's row
		existing, ferr := store.ContentProgressFor(contentID, studentID)
		if ferr != nil {
			return nil, fmt.Errorf("fetch winning completion: %w", ferr)
		}
		return &CompletionResult{AlreadyCompleted: true, CompletedAt: existing.CompletedAt}, nil
	}
	if err != nil {
		return nil, err
	}

	return &CompletionResult{AlreadyCompleted: false, CompletedAt: row.CompletedAt}, nil
}

// RecordAnswerSubmission stores a task/form submission against the student's
// own response document, appending to the stored answer list, then performs
// the completion side effect if the pair has no ContentProgress yet.
func (s *Service) RecordAnswerSubmission(studentID, contentID uint, answers json.RawMessage) (*CompletionResult, error) {
	store := s.store()

	ok, err := store.StudentExists(studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	content, err := store.ContentByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	module, err := store.ModuleByID(content.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed, err := s.CanAccess(studentID, module.CourseID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotEnrolled
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txStore := NewStore(tx)
		existing, err := txStore.ResponseFor(contentID, studentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc, merr := appendAnswer(nil, answers)
			if merr != nil {
				return merr
			}
			row := courseModels.ContentResponse{
				ContentID: contentID,
				StudentID: studentID,
				Answers:   doc,
			}
			if cerr := tx.Create(&row).Error; cerr != nil {
				return fmt.Errorf("create content response: %w", cerr)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch content response: %w", err)
		}
		doc, merr := appendAnswer(existing.Answers, answers)
		if merr != nil {
			return merr
		}
		existing.Answers = doc
		if serr := tx.Save(existing).Error; serr != nil {
			return fmt.Errorf("save content response: %w", serr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Same completion side effect as MarkCompleted; the idempotent
	// short-circuit there keeps repeat submissions from re-aggregating
	return s.MarkCompleted(studentID, contentID)
}

// appendAnswer appends a submission to the stored JSON answer list,
// creating the list when absent or unreadable
func appendAnswer(stored []byte, answer json.RawMessage) ([]byte, error) {
	var list []json.RawMessage
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &list); err != nil {
			list = nil
		}
	}
	list = append(list, answer)
	doc, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	return doc, nil
}
