package model

import "errors"

// Domain errors surfaced by the workflow services. HTTP status mapping
// happens at the handler layer.
var (
	// ErrUnknownTutorCode - the submitted tutor code resolves to nothing.
	ErrUnknownTutorCode = errors.New("unknown tutor code")

	// ErrCourseNotFound - the submitted course code resolves to nothing.
	ErrCourseNotFound = errors.New("course not found")

	// ErrDuplicateEmail - the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAlreadyEnrolled - an enrollment row already exists for the
	// (student, course) pair, whatever its status.
	ErrAlreadyEnrolled = errors.New("enrollment already exists")

	// ErrRequestNotFound - a linkage decision failed its preconditions.
	// Deliberately covers "no such student", "not pending" and "belongs
	// to another tutor" so callers cannot tell which.
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotFound - a course or enrollment operation failed its
	// ownership or state precondition, same conflation as above.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials - login with a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLinkagePending - a student tried to log in before the tutor
	// decided on the link request.
	ErrLinkagePending = errors.New("registration is still pending tutor approval")

	// ErrLinkageDeclined - a student whose link request was declined
	// tried to log in.
	ErrLinkageDeclined = errors.New("registration was declined by the tutor")

	// ErrCodeTaken - a shareable code collided with an existing row at
	// insert time. Registration paths regenerate and retry on this.
	ErrCodeTaken = errors.New("code already taken")

	// ErrInvalidCourseCode - a caller-supplied course code is not a
	// canonical code (wrong length or characters outside the alphabet).
	ErrInvalidCourseCode = errors.New("invalid course code")
)
