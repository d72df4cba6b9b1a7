package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eakgun/sims-backend/internal/app/models"
	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/auth"
)

// StudentService handles student profile management and a student's own
// course view
type StudentService struct {
	studentRepo    repositories.IStudentRepository
	userRepo       repositories.IUserRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// GetAll lists all students
func (s *StudentService) GetAll(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}
	return responses, nil
}

// GetByID retrieves one student
func (s *StudentService) GetByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// Create provisions a student with its credential in one transaction
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	username := strings.TrimSpace(req.Username)
	if !usernameRegex.MatchString(username) {
		return nil, apperrors.NewValidationError("username must be 3-50 characters of letters, digits, dot, dash or underscore")
	}

	if taken, err := s.userRepo.UsernameExists(ctx, username); err != nil {
		return nil, fmt.Errorf("student creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameAlreadyExists
	}
	if taken, err := s.studentRepo.EmailExists(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("student creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if taken, err := s.studentRepo.NumberExists(ctx, req.StudentNumber); err != nil {
		return nil, fmt.Errorf("student creation failed: %w", err)
	} else if taken {
		return nil, apperrors.ErrStudentNumberAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}
	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		StudentNumber: req.StudentNumber,
		Phone:         req.Phone,
		DateOfBirth:   req.DateOfBirth,
		Address:       req.Address,
	}

	if err := s.studentRepo.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	student.User = user
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// Update modifies a student profile. Uniqueness pre-checks only fire when
// the field actually changes, so saving a profile unchanged never conflicts
// with itself.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != student.Email {
		if taken, err := s.studentRepo.EmailExists(ctx, req.Email); err != nil {
			return nil, fmt.Errorf("student update failed: %w", err)
		} else if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	if req.StudentNumber != student.StudentNumber {
		if taken, err := s.studentRepo.NumberExists(ctx, req.StudentNumber); err != nil {
			return nil, fmt.Errorf("student update failed: %w", err)
		} else if taken {
			return nil, apperrors.ErrStudentNumberAlreadyExists
		}
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.StudentNumber = req.StudentNumber
	student.Phone = req.Phone
	student.DateOfBirth = req.DateOfBirth
	student.Address = req.Address

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// Delete removes a student, its enrollments and its credential
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}

// GetOwnCourses lists the courses the calling student is enrolled in
func (s *StudentService) GetOwnCourses(ctx context.Context, userID int64) ([]dto.EnrollmentResponse, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponses(enrollments), nil
}
