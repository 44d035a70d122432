package progress

import (
	"math"

	"gorm.io/gorm"
)

// Options carry the policy knobs the reference behavior left ambiguous.
type Options struct {
	// AllowCancelledEnrollment makes the access gate accept cancelled
	// enrollments, matching the legacy behavior. Off by default.
	AllowCancelledEnrollment bool

	// SkipEmptyModules excludes modules without content items from the
	// course mean instead of counting them as 0%.
	SkipEmptyModules bool
}

// Service is the progress-aggregation engine. All operations take the
// student id explicitly; nothing is read from ambient request state.
type Service struct {
	db   *gorm.DB
	opts Options
}

// New returns a Service with default policy
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// NewWithOptions returns a Service with explicit policy
func NewWithOptions(db *gorm.DB, opts Options) *Service {
	return &Service{db: db, opts: opts}
}

func (s *Service) store() *Store {
	return NewStore(s.db)
}

// round2 rounds to two decimal places, the precision stored for percentages
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
