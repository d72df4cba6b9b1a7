package services

import (
	"context"
	"time"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
)

// In-memory repository fakes. They enforce the same uniqueness rules the
// database indexes do so service behavior can be exercised without Postgres.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = user
	return nil
}

type fakeStudentRepo struct {
	userRepo    *fakeUserRepo
	enrollments *fakeEnrollmentRepo
	students    map[int64]*models.Student
	nextID      int64
}

func newFakeStudentRepo(userRepo *fakeUserRepo, enrollments *fakeEnrollmentRepo) *fakeStudentRepo {
	return &fakeStudentRepo{
		userRepo:    userRepo,
		enrollments: enrollments,
		students:    map[int64]*models.Student{},
		nextID:      1,
	}
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range r.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, s := range r.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) NumberExists(_ context.Context, number string) (bool, error) {
	for _, s := range r.students {
		if s.StudentNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	for _, s := range r.students {
		if s.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if s.StudentNumber == student.StudentNumber {
			return apperrors.ErrStudentNumberAlreadyExists
		}
	}
	if err := r.userRepo.Create(ctx, user); err != nil {
		return err
	}
	student.ID = r.nextID
	student.UserID = user.ID
	student.CreatedAt = time.Now()
	r.nextID++
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	s, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	// Enrollments and the credential go with the profile
	for eid, e := range r.enrollments.enrollments {
		if e.StudentID == id {
			delete(r.enrollments.enrollments, eid)
		}
	}
	delete(r.students, id)
	delete(r.userRepo.users, s.UserID)
	return nil
}

type fakeTeacherRepo struct {
	userRepo *fakeUserRepo
	courses  *fakeCourseRepo
	teachers map[int64]*models.Teacher
	nextID   int64
}

func newFakeTeacherRepo(userRepo *fakeUserRepo, courses *fakeCourseRepo) *fakeTeacherRepo {
	return &fakeTeacherRepo{
		userRepo: userRepo,
		courses:  courses,
		teachers: map[int64]*models.Teacher{},
		nextID:   1,
	}
}

func (r *fakeTeacherRepo) GetAll(_ context.Context) ([]*models.Teacher, error) {
	out := make([]*models.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	if t, ok := r.teachers[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) GetByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	for _, t := range r.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, t := range r.teachers {
		if t.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeacherRepo) NumberExists(_ context.Context, number string) (bool, error) {
	for _, t := range r.teachers {
		if t.TeacherNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeacherRepo) CreateWithUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	if err := r.userRepo.Create(ctx, user); err != nil {
		return err
	}
	teacher.ID = r.nextID
	teacher.UserID = user.ID
	teacher.CreatedAt = time.Now()
	r.nextID++
	r.teachers[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherRepo) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := r.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	r.teachers[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherRepo) Delete(_ context.Context, id int64) error {
	t, ok := r.teachers[id]
	if !ok {
		return apperrors.ErrTeacherNotFound
	}
	// Courses survive the teacher, the reference is cleared
	for _, c := range r.courses.courses {
		if c.TeacherID != nil && *c.TeacherID == id {
			c.TeacherID = nil
		}
	}
	delete(r.teachers, id)
	delete(r.userRepo.users, t.UserID)
	return nil
}

type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := r.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *fakeCourseRepo) GetByTeacherID(_ context.Context, teacherID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range r.courses {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) CodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range r.courses {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	for _, c := range r.courses {
		if c.Code == course.Code {
			return apperrors.ErrCourseCodeAlreadyExists
		}
	}
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	r.nextID++
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) AssignTeacher(_ context.Context, courseID, teacherID int64) error {
	c, ok := r.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.TeacherID = &teacherID
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[int64]*models.Enrollment{}, nextID: 1}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	for _, existing := range r.enrollments {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	e.ID = r.nextID
	e.EnrolledAt = time.Now()
	r.nextID++
	r.enrollments[e.ID] = e
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	if e, ok := r.enrollments[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (r *fakeEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(r.enrollments, id)
	return nil
}

func (r *fakeEnrollmentRepo) ListAll(_ context.Context, courseID *int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.enrollments {
		if courseID == nil || e.CourseID == *courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) ListByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	return r.ListAll(context.Background(), &courseID)
}

func (r *fakeEnrollmentRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) UpdateGrade(_ context.Context, id int64, grade *float64, letterGrade *string) error {
	e, ok := r.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	now := time.Now()
	e.Grade = grade
	e.LetterGrade = letterGrade
	e.UpdatedAt = &now
	return nil
}
