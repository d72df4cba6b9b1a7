package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
)

type enrollmentFixture struct {
	svc         *EnrollmentService
	studentRepo *fakeStudentRepo
	teacherRepo *fakeTeacherRepo
	courseRepo  *fakeCourseRepo
	student     *models.Student
	teacher     *models.Teacher
	teacherUser *models.User
	course      *models.Course
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	courseRepo := newFakeCourseRepo()
	enrollmentRepo := newFakeEnrollmentRepo()
	studentRepo := newFakeStudentRepo(userRepo, enrollmentRepo)
	teacherRepo := newFakeTeacherRepo(userRepo, courseRepo)

	studentUser := &models.User{Username: "stud", PasswordHash: "x", Role: models.RoleStudent}
	student := &models.Student{
		FirstName: "Sam", LastName: "Lee", Email: "sam@example.com",
		StudentNumber: "S1", DateOfBirth: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := studentRepo.CreateWithUser(ctx, studentUser, student); err != nil {
		t.Fatalf("seeding student: %v", err)
	}

	teacherUser := &models.User{Username: "teach", PasswordHash: "x", Role: models.RoleTeacher}
	teacher := &models.Teacher{
		FirstName: "Tara", LastName: "Kim", Email: "tara@example.com", TeacherNumber: "T1",
	}
	if err := teacherRepo.CreateWithUser(ctx, teacherUser, teacher); err != nil {
		t.Fatalf("seeding teacher: %v", err)
	}

	course := &models.Course{Name: "Algorithms", Code: "CS201", Credits: 4, TeacherID: &teacher.ID}
	if err := courseRepo.Create(ctx, course); err != nil {
		t.Fatalf("seeding course: %v", err)
	}

	svc := NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, teacherRepo, zerolog.Nop())
	return &enrollmentFixture{
		svc:         svc,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		courseRepo:  courseRepo,
		student:     student,
		teacher:     teacher,
		teacherUser: teacherUser,
		course:      course,
	}
}

func TestEnroll(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if resp.StudentName != "Sam Lee" {
		t.Errorf("StudentName = %q, want %q", resp.StudentName, "Sam Lee")
	}
	if resp.CourseCode != "CS201" {
		t.Errorf("CourseCode = %q, want CS201", resp.CourseCode)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()
	req := &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID}

	if _, err := f.svc.Enroll(ctx, req); err != nil {
		t.Fatalf("first Enroll() error = %v", err)
	}
	if _, err := f.svc.Enroll(ctx, req); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("second Enroll() error = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollMissingReferences(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: 999, CourseID: f.course.ID}); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Enroll(unknown student) error = %v, want ErrStudentNotFound", err)
	}
	if _, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: 999}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("Enroll(unknown course) error = %v, want ErrCourseNotFound", err)
	}
}

func TestListRejectsUnknownCourseFilter(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	unknown := int64(999)
	if _, err := f.svc.List(ctx, &unknown); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("List(unknown course) error = %v, want ErrCourseNotFound", err)
	}
}

func TestUpdateGradeAsOwningTeacher(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrolled, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	grade := 87.5
	letter := "B+"
	resp, err := f.svc.UpdateGrade(ctx, enrolled.ID, f.teacherUser.ID, models.RoleTeacher,
		&dto.UpdateGradeRequest{Grade: &grade, LetterGrade: &letter})
	if err != nil {
		t.Fatalf("UpdateGrade() error = %v", err)
	}
	if resp.Grade == nil || *resp.Grade != 87.5 {
		t.Errorf("Grade = %v, want 87.5", resp.Grade)
	}
	if resp.UpdatedAt == nil {
		t.Error("UpdatedAt not set after grading")
	}
}

func TestUpdateGradeDeniedForOtherTeacher(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrolled, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	otherUser := &models.User{Username: "other", PasswordHash: "x", Role: models.RoleTeacher}
	other := &models.Teacher{FirstName: "Omar", LastName: "Diaz", Email: "omar@example.com", TeacherNumber: "T2"}
	if err := f.teacherRepo.CreateWithUser(ctx, otherUser, other); err != nil {
		t.Fatalf("seeding second teacher: %v", err)
	}

	grade := 50.0
	_, err = f.svc.UpdateGrade(ctx, enrolled.ID, otherUser.ID, models.RoleTeacher,
		&dto.UpdateGradeRequest{Grade: &grade})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("UpdateGrade() error = %v, want ErrPermissionDenied", err)
	}
}

func TestUpdateGradeAdminBypassesOwnership(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	// Detach the course so no teacher owns it
	f.course.TeacherID = nil

	enrolled, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	grade := 91.0
	if _, err := f.svc.UpdateGrade(ctx, enrolled.ID, 12345, models.RoleAdmin,
		&dto.UpdateGradeRequest{Grade: &grade}); err != nil {
		t.Errorf("admin UpdateGrade() error = %v", err)
	}
}

func TestRemoveEnrollment(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	enrolled, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	if err := f.svc.Remove(ctx, enrolled.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := f.svc.Remove(ctx, enrolled.ID); !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("second Remove() error = %v, want ErrEnrollmentNotFound", err)
	}

	// The pair can be enrolled again after removal
	if _, err := f.svc.Enroll(ctx, &dto.EnrollStudentRequest{StudentID: f.student.ID, CourseID: f.course.ID}); err != nil {
		t.Errorf("re-Enroll() after removal error = %v", err)
	}
}
