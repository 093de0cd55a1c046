package model

import (
	"time"

	"github.com/google/uuid"
)

// Course is a course published by a tutor. Code is both the primary
// identifier and the join code students submit; it is unique across
// all courses and independent of the tutor-code namespace.
type Course struct {
	Code        string     `json:"code"`
	TutorID     uuid.UUID  `json:"tutor_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CoursePatch carries the mutable course fields for an update.
// Nil fields are left untouched.
type CoursePatch struct {
	Name        *string
	Description *string
	ImageURL    *string
}
