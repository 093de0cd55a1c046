package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/codegen"
	"github.com/tutorhub/tutorhub/internal/model"
)

// In-memory stores for the workflow tests. They enforce the same
// uniqueness the schema's constraints do, so the services see the
// conflict behavior they would see against the real store.

type fakeTutorStore struct {
	mu     sync.Mutex
	tutors map[uuid.UUID]*model.Tutor

	// Mirror the schema's foreign keys on tutor deletion: students
	// keep their rows with tutor_id cleared, courses are dropped.
	students *fakeStudentStore
	courses  *fakeCourseStore
}

func newFakeTutorStore() *fakeTutorStore {
	return &fakeTutorStore{tutors: make(map[uuid.UUID]*model.Tutor)}
}

func (f *fakeTutorStore) Create(_ context.Context, tutor *model.Tutor) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.tutors {
		if existing.Code == tutor.Code {
			return model.ErrCodeTaken
		}
		if existing.Email == tutor.Email {
			return model.ErrDuplicateEmail
		}
	}

	tutor.CreatedAt = time.Now()
	f.tutors[tutor.ID] = tutor
	return nil
}

func (f *fakeTutorStore) GetByID(_ context.Context, id uuid.UUID) (*model.Tutor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tutors[id], nil
}

func (f *fakeTutorStore) GetByCode(_ context.Context, code string) (*model.Tutor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tutor := range f.tutors {
		if tutor.Code == code {
			return tutor, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorStore) GetByEmail(_ context.Context, email string) (*model.Tutor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tutor := range f.tutors {
		if tutor.Email == email {
			return tutor, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorStore) CodeExists(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tutor := range f.tutors {
		if tutor.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTutorStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if _, ok := f.tutors[id]; !ok {
		f.mu.Unlock()
		return model.ErrNotFound
	}
	delete(f.tutors, id)
	f.mu.Unlock()

	f.students.detachTutor(id)
	f.courses.dropTutor(id)
	return nil
}

type fakeStudentStore struct {
	mu       sync.Mutex
	students map[uuid.UUID]*model.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[uuid.UUID]*model.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *model.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.students {
		if existing.Email == student.Email {
			return model.ErrDuplicateEmail
		}
	}

	student.CreatedAt = time.Now()
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.students[id], nil
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.Email == email {
			return student, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) ListPendingByTutor(_ context.Context, tutorID uuid.UUID) ([]*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var pending []*model.Student
	for _, student := range f.students {
		if student.TutorID != nil && *student.TutorID == tutorID && student.Status == model.LinkagePending {
			pending = append(pending, student)
		}
	}
	return pending, nil
}

func (f *fakeStudentStore) UpdateStatusIfPending(_ context.Context, studentID, tutorID uuid.UUID, next model.LinkageStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	student, ok := f.students[studentID]
	if !ok || student.TutorID == nil || *student.TutorID != tutorID || student.Status != model.LinkagePending {
		return false, nil
	}

	now := time.Now()
	student.Status = next
	student.UpdatedAt = &now
	return true, nil
}

func (f *fakeStudentStore) detachTutor(tutorID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, student := range f.students {
		if student.TutorID != nil && *student.TutorID == tutorID {
			student.TutorID = nil
		}
	}
}

type fakeCourseStore struct {
	mu      sync.Mutex
	courses map[string]*model.Course

	// Mirrors the ON DELETE CASCADE the schema puts on enrollments.
	enrollments *fakeEnrollmentStore
}

func newFakeCourseStore(enrollments *fakeEnrollmentStore) *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]*model.Course), enrollments: enrollments}
}

func (f *fakeCourseStore) Create(_ context.Context, course *model.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.courses[course.Code]; exists {
		return model.ErrCodeTaken
	}

	course.CreatedAt = time.Now()
	f.courses[course.Code] = course
	return nil
}

func (f *fakeCourseStore) GetByCode(_ context.Context, code string) (*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.courses[code], nil
}

func (f *fakeCourseStore) ListByTutor(_ context.Context, tutorID uuid.UUID) ([]*model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var courses []*model.Course
	for _, course := range f.courses {
		if course.TutorID == tutorID {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (f *fakeCourseStore) Update(_ context.Context, code string, tutorID uuid.UUID, patch model.CoursePatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	course, ok := f.courses[code]
	if !ok || course.TutorID != tutorID {
		return false, nil
	}

	if patch.Name != nil {
		course.Name = *patch.Name
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		course.ImageURL = patch.ImageURL
	}
	now := time.Now()
	course.UpdatedAt = &now
	return true, nil
}

func (f *fakeCourseStore) Delete(_ context.Context, code string, tutorID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	course, ok := f.courses[code]
	if !ok || course.TutorID != tutorID {
		return false, nil
	}

	delete(f.courses, code)
	f.enrollments.dropCourse(code)
	return true, nil
}

func (f *fakeCourseStore) dropTutor(tutorID uuid.UUID) {
	f.mu.Lock()
	var codes []string
	for code, course := range f.courses {
		if course.TutorID == tutorID {
			codes = append(codes, code)
			delete(f.courses, code)
		}
	}
	f.mu.Unlock()

	for _, code := range codes {
		f.enrollments.dropCourse(code)
	}
}

func (f *fakeCourseStore) CodeExists(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.courses[code]
	return exists, nil
}

type enrollmentKey struct {
	studentID  uuid.UUID
	courseCode string
}

type fakeEnrollmentStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[enrollmentKey]*model.Enrollment
	courses *fakeCourseStore
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{rows: make(map[enrollmentKey]*model.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *model.Enrollment) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := enrollmentKey{enrollment.StudentID, enrollment.CourseCode}
	if _, exists := f.rows[key]; exists {
		return false, nil
	}

	f.nextID++
	enrollment.ID = f.nextID
	enrollment.CreatedAt = time.Now()
	f.rows[key] = enrollment
	return true, nil
}

func (f *fakeEnrollmentStore) Get(_ context.Context, studentID uuid.UUID, courseCode string) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[enrollmentKey{studentID, courseCode}], nil
}

func (f *fakeEnrollmentStore) UpdateStatusIfPending(ctx context.Context, courseCode string, studentID, tutorID uuid.UUID, next model.EnrollmentStatus) (bool, error) {
	course, err := f.courses.GetByCode(ctx, courseCode)
	if err != nil {
		return false, err
	}
	if course == nil || course.TutorID != tutorID {
		return false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	enrollment, ok := f.rows[enrollmentKey{studentID, courseCode}]
	if !ok || enrollment.Status != model.EnrollmentPending {
		return false, nil
	}

	now := time.Now()
	enrollment.Status = next
	enrollment.UpdatedAt = &now
	return true, nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseCode string) ([]*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var enrollments []*model.Enrollment
	for _, e := range f.rows {
		if e.CourseCode == courseCode {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var enrollments []*model.Enrollment
	for _, e := range f.rows {
		if e.StudentID == studentID {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

func (f *fakeEnrollmentStore) dropCourse(courseCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.rows {
		if key.courseCode == courseCode {
			delete(f.rows, key)
		}
	}
}

// fakeCredentials keeps the service tests off bcrypt and JWT.
type fakeCredentials struct{}

func (fakeCredentials) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (fakeCredentials) VerifyPassword(password, hash string) bool {
	return hash == "hash:"+password
}

func (fakeCredentials) IssueToken(subject uuid.UUID, role auth.Role) (string, error) {
	return "token:" + string(role) + ":" + subject.String(), nil
}

type recordingNotifier struct {
	mu          sync.Mutex
	linkages    int
	enrollments int
}

func (n *recordingNotifier) StudentRequestedLinkage(context.Context, *model.Tutor, *model.Student) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.linkages++
}

func (n *recordingNotifier) StudentRequestedEnrollment(context.Context, *model.Tutor, *model.Student, *model.Course) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enrollments++
}

// env wires the services over the fakes the way main wires them over
// the pgx repositories.
type env struct {
	tutors      *fakeTutorStore
	students    *fakeStudentStore
	courses     *fakeCourseStore
	enrollments *fakeEnrollmentStore
	notifier    *recordingNotifier

	accounts          *AccountService
	linkage           *LinkageService
	courseService     *CourseService
	enrollmentService *EnrollmentService
}

func newEnv() *env {
	tutors := newFakeTutorStore()
	students := newFakeStudentStore()
	enrollments := newFakeEnrollmentStore()
	courses := newFakeCourseStore(enrollments)
	enrollments.courses = courses
	tutors.students = students
	tutors.courses = courses

	notifier := &recordingNotifier{}
	gen := codegen.NewGenerator()
	logger := zap.NewNop()

	return &env{
		tutors:            tutors,
		students:          students,
		courses:           courses,
		enrollments:       enrollments,
		notifier:          notifier,
		accounts:          NewAccountService(tutors, students, gen, fakeCredentials{}, notifier, logger),
		linkage:           NewLinkageService(students, logger),
		courseService:     NewCourseService(courses, gen, logger),
		enrollmentService: NewEnrollmentService(enrollments, courses, tutors, students, notifier, logger),
	}
}
