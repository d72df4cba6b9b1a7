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

func newTestStudentService() (*StudentService, *fakeUserRepo, *fakeStudentRepo, *fakeEnrollmentRepo) {
	userRepo := newFakeUserRepo()
	enrollmentRepo := newFakeEnrollmentRepo()
	studentRepo := newFakeStudentRepo(userRepo, enrollmentRepo)
	svc := NewStudentService(studentRepo, userRepo, enrollmentRepo, zerolog.Nop())
	return svc, userRepo, studentRepo, enrollmentRepo
}

func createStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Username:      "slee",
		Password:      "password1",
		FirstName:     "Sam",
		LastName:      "Lee",
		Email:         "sam@example.com",
		StudentNumber: "S1",
		DateOfBirth:   time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStudentCreateAndDeleteCascade(t *testing.T) {
	svc, userRepo, _, _ := newTestStudentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createStudentRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Username != "slee" {
		t.Errorf("Username = %q, want slee", created.Username)
	}

	user, err := userRepo.GetByUsername(ctx, "slee")
	if err != nil {
		t.Fatalf("credential missing after create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The credential goes with the profile
	if _, err := userRepo.GetByID(ctx, user.ID); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("credential still present after student delete: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("second Delete() error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentDeleteRemovesEnrollments(t *testing.T) {
	svc, _, _, enrollmentRepo := newTestStudentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createStudentRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := enrollmentRepo.Create(ctx, &models.Enrollment{StudentID: created.ID, CourseID: 1}); err != nil {
		t.Fatalf("seeding enrollment: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	remaining, err := enrollmentRepo.ListByStudent(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("len(remaining) = %d, want 0 after student delete", len(remaining))
	}
}

func TestStudentCreateDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestStudentService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createStudentRequest()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := createStudentRequest()
	req.Email = "other@example.com"
	req.StudentNumber = "S2"
	if _, err := svc.Create(ctx, req); !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("Create() error = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestStudentUpdateUnchangedFieldsDoNotConflict(t *testing.T) {
	svc, _, _, _ := newTestStudentService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createStudentRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateStudentRequest{
		FirstName:     "Samuel",
		LastName:      "Lee",
		Email:         "sam@example.com",
		StudentNumber: "S1",
		DateOfBirth:   created.DateOfBirth,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.FirstName != "Samuel" {
		t.Errorf("FirstName = %q, want Samuel", updated.FirstName)
	}
}

func TestStudentUpdateDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestStudentService()
	ctx := context.Background()

	first, err := svc.Create(ctx, createStudentRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second := createStudentRequest()
	second.Username = "other"
	second.Email = "other@example.com"
	second.StudentNumber = "S2"
	if _, err := svc.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(ctx, first.ID, &dto.UpdateStudentRequest{
		FirstName:     "Sam",
		LastName:      "Lee",
		Email:         "other@example.com",
		StudentNumber: "S1",
		DateOfBirth:   first.DateOfBirth,
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("Update() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestStudentGetByIDNotFound(t *testing.T) {
	svc, _, _, _ := newTestStudentService()

	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("GetByID() error = %v, want ErrStudentNotFound", err)
	}
}
