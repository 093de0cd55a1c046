package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub/internal/model"
)

func TestEnrollmentLifecycle(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	tutor := registerTutor(t, e, "alice@tutors.test")
	student := registerStudent(t, e, "bob@students.test", tutor.Code)
	course := createCourse(t, e, tutor)

	enrollment, err := e.enrollmentService.RequestJoin(ctx, student.ID, course.Code)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentPending, enrollment.Status)
	assert.Equal(t, 1, e.notifier.enrollments)

	// A second request against the same course is a conflict even
	// though the first is still pending.
	_, err = e.enrollmentService.RequestJoin(ctx, student.ID, course.Code)
	assert.ErrorIs(t, err, model.ErrAlreadyEnrolled)
	assert.Equal(t, 1, e.notifier.enrollments, "no notification for a rejected duplicate")

	require.NoError(t, e.enrollmentService.Approve(ctx, course.Code, student.ID, tutor.ID))

	got, err := e.enrollments.Get(ctx, student.ID, course.Code)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentApproved, got.Status)

	// Terminal rows never move again.
	err = e.enrollmentService.Reject(ctx, course.Code, student.ID, tutor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	got, err = e.enrollments.Get(ctx, student.ID, course.Code)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentApproved, got.Status)

	// Approval still does not allow a re-join.
	_, err = e.enrollmentService.RequestJoin(ctx, student.ID, course.Code)
	assert.ErrorIs(t, err, model.ErrAlreadyEnrolled)
}

func TestRequestJoin_UnknownCourse(t *testing.T) {
	e := newEnv()
	tutor := registerTutor(t, e, "alice@tutors.test")
	student := registerStudent(t, e, "bob@students.test", tutor.Code)

	_, err := e.enrollmentService.RequestJoin(context.Background(), student.ID, "ZZZZZZ")
	assert.ErrorIs(t, err, model.ErrCourseNotFound)
	assert.Zero(t, e.notifier.enrollments)

	enrollments, err := e.enrollmentService.ListForStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Empty(t, enrollments, "failed join leaves nothing behind")
}

func TestRequestJoin_CanonicalizesCode(t *testing.T) {
	e := newEnv()
	tutor := registerTutor(t, e, "alice@tutors.test")
	student := registerStudent(t, e, "bob@students.test", tutor.Code)
	course := createCourse(t, e, tutor)

	enrollment, err := e.enrollmentService.RequestJoin(context.Background(), student.ID, "  "+lower(course.Code)+" ")
	require.NoError(t, err)
	assert.Equal(t, course.Code, enrollment.CourseCode)
}

func TestEnrollmentDecision_OwnershipScoped(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	tutor := registerTutor(t, e, "alice@tutors.test")
	other := registerTutor(t, e, "carol@tutors.test")
	student := registerStudent(t, e, "bob@students.test", tutor.Code)
	course := createCourse(t, e, tutor)

	_, err := e.enrollmentService.RequestJoin(ctx, student.ID, course.Code)
	require.NoError(t, err)

	// A foreign tutor gets the same answer as for a missing row.
	err = e.enrollmentService.Approve(ctx, course.Code, student.ID, other.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	got, err := e.enrollments.Get(ctx, student.ID, course.Code)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentPending, got.Status)

	// The owner still can.
	require.NoError(t, e.enrollmentService.Approve(ctx, course.Code, student.ID, tutor.ID))
}

func TestEnrollmentDecision_UnknownStudent(t *testing.T) {
	e := newEnv()
	tutor := registerTutor(t, e, "alice@tutors.test")
	course := createCourse(t, e, tutor)

	err := e.enrollmentService.Approve(context.Background(), course.Code, uuid.New(), tutor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListForCourse(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	tutor := registerTutor(t, e, "alice@tutors.test")
	other := registerTutor(t, e, "carol@tutors.test")
	course := createCourse(t, e, tutor)

	bob := registerStudent(t, e, "bob@students.test", tutor.Code)
	dave := registerStudent(t, e, "dave@students.test", tutor.Code)
	for _, s := range []*model.Student{bob, dave} {
		_, err := e.enrollmentService.RequestJoin(ctx, s.ID, course.Code)
		require.NoError(t, err)
	}
	require.NoError(t, e.enrollmentService.Approve(ctx, course.Code, bob.ID, tutor.ID))

	enrollments, err := e.enrollmentService.ListForCourse(ctx, course.Code, tutor.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)

	// Only the owner may list, and a bad code reads the same way.
	_, err = e.enrollmentService.ListForCourse(ctx, course.Code, other.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = e.enrollmentService.ListForCourse(ctx, "ZZZZZZ", tutor.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListForStudent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	tutor := registerTutor(t, e, "alice@tutors.test")
	student := registerStudent(t, e, "bob@students.test", tutor.Code)

	first := createCourse(t, e, tutor)
	second := createCourse(t, e, tutor)
	for _, course := range []*model.Course{first, second} {
		_, err := e.enrollmentService.RequestJoin(ctx, student.ID, course.Code)
		require.NoError(t, err)
	}
	require.NoError(t, e.enrollmentService.Reject(ctx, first.Code, student.ID, tutor.ID))

	enrollments, err := e.enrollmentService.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)

	byCode := make(map[string]model.EnrollmentStatus, len(enrollments))
	for _, enr := range enrollments {
		byCode[enr.CourseCode] = enr.Status
	}
	assert.Equal(t, model.EnrollmentRejected, byCode[first.Code])
	assert.Equal(t, model.EnrollmentPending, byCode[second.Code])
}
