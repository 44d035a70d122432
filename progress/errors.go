package progress

import "errors"

// Engine error taxonomy. Storage failures are wrapped and propagated as-is;
// callers retry at the request boundary, never inside the aggregators.
var (
	// ErrNotFound means a referenced content/module/course row does not exist.
	ErrNotFound = errors.New("progress: resource not found")

	// ErrUnauthenticated means the student id does not resolve to a user.
	ErrUnauthenticated = errors.New("progress: student identity not resolved")

	// ErrNotEnrolled means the enrollment gate rejected the student for the
	// course owning the content.
	ErrNotEnrolled = errors.New("progress: student not enrolled in course")
)
