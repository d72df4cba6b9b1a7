package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
)

func newTestCourseService(t *testing.T) (*CourseService, *fakeTeacherRepo, *models.Teacher) {
	t.Helper()
	userRepo := newFakeUserRepo()
	courseRepo := newFakeCourseRepo()
	teacherRepo := newFakeTeacherRepo(userRepo, courseRepo)

	teacherUser := &models.User{Username: "teach", PasswordHash: "x", Role: models.RoleTeacher}
	teacher := &models.Teacher{FirstName: "Tara", LastName: "Kim", Email: "tara@example.com", TeacherNumber: "T1"}
	if err := teacherRepo.CreateWithUser(context.Background(), teacherUser, teacher); err != nil {
		t.Fatalf("seeding teacher: %v", err)
	}

	return NewCourseService(courseRepo, teacherRepo, zerolog.Nop()), teacherRepo, teacher
}

func TestCreateCourseWithoutTeacher(t *testing.T) {
	svc, _, _ := newTestCourseService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Databases", Code: "CS301", Credits: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.TeacherID != nil {
		t.Errorf("TeacherID = %v, want nil", resp.TeacherID)
	}
}

func TestCreateCourseUnknownTeacher(t *testing.T) {
	svc, _, _ := newTestCourseService(t)
	ctx := context.Background()

	unknown := int64(999)
	_, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Databases", Code: "CS301", Credits: 3, TeacherID: &unknown})
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		t.Errorf("Create() error = %v, want ErrTeacherNotFound", err)
	}
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	svc, _, _ := newTestCourseService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Databases", Code: "CS301", Credits: 3}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Other", Code: "CS301", Credits: 2})
	if !errors.Is(err, apperrors.ErrCourseCodeAlreadyExists) {
		t.Errorf("Create() error = %v, want ErrCourseCodeAlreadyExists", err)
	}
}

func TestUpdateCourseKeepingCode(t *testing.T) {
	svc, _, _ := newTestCourseService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Databases", Code: "CS301", Credits: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Saving with the same code must not conflict with itself
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateCourseRequest{Name: "Advanced Databases", Code: "CS301", Credits: 4})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Advanced Databases" {
		t.Errorf("Name = %q, want %q", updated.Name, "Advanced Databases")
	}
	if updated.Credits != 4 {
		t.Errorf("Credits = %d, want 4", updated.Credits)
	}
}

func TestAssignTeacher(t *testing.T) {
	svc, _, teacher := newTestCourseService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "Databases", Code: "CS301", Credits: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := svc.AssignTeacher(ctx, created.ID, &dto.AssignTeacherRequest{TeacherID: teacher.ID})
	if err != nil {
		t.Fatalf("AssignTeacher() error = %v", err)
	}
	if resp.TeacherID == nil || *resp.TeacherID != teacher.ID {
		t.Errorf("TeacherID = %v, want %d", resp.TeacherID, teacher.ID)
	}

	if _, err := svc.AssignTeacher(ctx, created.ID, &dto.AssignTeacherRequest{TeacherID: 999}); !errors.Is(err, apperrors.ErrTeacherNotFound) {
		t.Errorf("AssignTeacher(unknown) error = %v, want ErrTeacherNotFound", err)
	}
	if _, err := svc.AssignTeacher(ctx, 999, &dto.AssignTeacherRequest{TeacherID: teacher.ID}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("AssignTeacher(unknown course) error = %v, want ErrCourseNotFound", err)
	}
}
