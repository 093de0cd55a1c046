package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus is the student→course approval state.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"  // waiting for the course owner
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// IsValid checks the status is one of the known values.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s EnrollmentStatus) IsTerminal() bool {
	return s == EnrollmentApproved || s == EnrollmentRejected
}

// CanTransitionTo reports whether s → next is a legal transition.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	return s == EnrollmentPending && next.IsTerminal()
}

// Enrollment is the student↔course relation. At most one row exists
// per (student, course) pair regardless of status.
type Enrollment struct {
	ID         int64            `json:"id"`
	StudentID  uuid.UUID        `json:"student_id"`
	CourseCode string           `json:"course_code"`
	Status     EnrollmentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  *time.Time       `json:"updated_at,omitempty"`

	// Convenience fields filled by list projections, not stored columns.
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}

// IsPending checks if the enrollment is waiting for a decision.
func (e *Enrollment) IsPending() bool {
	return e.Status == EnrollmentPending
}
