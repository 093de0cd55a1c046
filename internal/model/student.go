package model

import (
	"time"

	"github.com/google/uuid"
)

// LinkageStatus is the student→tutor approval state.
type LinkageStatus string

const (
	LinkagePending  LinkageStatus = "pending"  // waiting for the tutor's decision
	LinkageApproved LinkageStatus = "approved"
	LinkageDeclined LinkageStatus = "declined"
)

// IsValid checks the status is one of the known values.
func (s LinkageStatus) IsValid() bool {
	switch s {
	case LinkagePending, LinkageApproved, LinkageDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s LinkageStatus) IsTerminal() bool {
	return s == LinkageApproved || s == LinkageDeclined
}

// CanTransitionTo reports whether s → next is a legal transition.
// The only legal moves are pending → approved and pending → declined.
func (s LinkageStatus) CanTransitionTo(next LinkageStatus) bool {
	return s == LinkagePending && next.IsTerminal()
}

// Student is a registered student. TutorID is a weak reference: it is
// set when the student registers against a tutor code and cleared if
// the tutor is deleted. Status starts at pending and is moved only by
// the tutor through the linkage workflow.
type Student struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	GradeLevel   int           `json:"grade_level"`
	TutorID      *uuid.UUID    `json:"tutor_id"`
	Status       LinkageStatus `json:"status"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

// IsPending checks if the student is still waiting for a decision.
func (s *Student) IsPending() bool {
	return s.Status == LinkagePending
}

// IsApproved checks if the tutor accepted the student.
func (s *Student) IsApproved() bool {
	return s.Status == LinkageApproved
}
